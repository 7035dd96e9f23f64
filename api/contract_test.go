// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestContractDetailsDispatch(t *testing.T) {
	testCases := []struct {
		body    string
		product string
	}{
		{`{"contract_id":"c1","product_id":"multipliers","status":"open","buy_price":"10","multiplier":100,"commission":"0.05","limit_order":{"stop_loss":"2"}}`, ProductMultipliers},
		{`{"contract_id":"c2","product_id":"accumulators","status":"open","buy_price":"10","growth_rate":"0.01","tick_count":7,"high_barrier":"101.5","low_barrier":"100.5"}`, ProductAccumulators},
		{`{"contract_id":"c3","product_id":"rise_fall","status":"won","buy_price":"10","duration":5,"duration_unit":"t","payout":"19.5","barrier":"100"}`, ProductRiseFall},
	}
	for _, tc := range testCases {
		var d ContractDetails
		if err := json.Unmarshal([]byte(tc.body), &d); err != nil {
			t.Fatalf("%s: %v", tc.product, err)
		}
		if d.ProductID != tc.product || d.Variant == nil || d.Variant.Product() != tc.product {
			t.Fatalf("%s: unexpected details %+v", tc.product, d)
		}
		if !d.BuyPrice.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("%s: want buy price 10, got %s", tc.product, d.BuyPrice)
		}
	}

	var m ContractDetails
	if err := json.Unmarshal([]byte(testCases[0].body), &m); err != nil {
		t.Fatal(err)
	}
	md, ok := m.Multiplier()
	if !ok || md.Multiplier != 100 || md.LimitOrder == nil || md.LimitOrder.StopLoss == nil {
		t.Fatalf("unexpected multiplier details %+v", md)
	}
	if _, ok := m.RiseFall(); ok {
		t.Fatalf("multiplier contract must not have rise/fall details")
	}
}

func TestContractDetailsUnknownProduct(t *testing.T) {
	for _, body := range []string{
		`{"contract_id":"c9","product_id":"vanillas"}`,
		`{"contract_id":"c9"}`,
	} {
		var d ContractDetails
		err := json.Unmarshal([]byte(body), &d)
		if !errors.Is(err, ErrUnknownProduct) {
			t.Fatalf("%s: want ErrUnknownProduct, got %v", body, err)
		}
	}
}

func TestContractDetailsRoundTrip(t *testing.T) {
	in := ContractDetails{
		Contract: Contract{
			ContractID:   "c2",
			ProductID:    ProductAccumulators,
			InstrumentID: "R_100",
			Status:       StatusOpen,
			BuyPrice:     decimal.NewFromInt(10),
			StartTime:    1700000000000,
		},
		Variant: AccumulatorDetails{
			GrowthRate:  decimal.RequireFromString("0.02"),
			TickCount:   3,
			HighBarrier: decimal.RequireFromString("101.25"),
			LowBarrier:  decimal.RequireFromString("99.75"),
		},
	}
	js, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out ContractDetails
	if err := json.Unmarshal(js, &out); err != nil {
		t.Fatal(err)
	}
	if out.ContractID != in.ContractID || out.StartTime != in.StartTime || !out.BuyPrice.Equal(in.BuyPrice) || !out.IsOpen() {
		t.Fatalf("want %+v, got %+v", in, out)
	}
	ad, ok := out.Accumulator()
	if !ok || ad.TickCount != 3 || !ad.GrowthRate.Equal(decimal.RequireFromString("0.02")) || !ad.LowBarrier.Equal(decimal.RequireFromString("99.75")) {
		t.Fatalf("unexpected accumulator details %+v", out.Variant)
	}

	in.ProductID = ProductRiseFall
	if _, err := json.Marshal(in); err == nil {
		t.Fatalf("want error for mismatched variant")
	}
}

func TestContractsUpdate(t *testing.T) {
	var single ContractsUpdate
	if err := json.Unmarshal([]byte(`{"contracts":{"contract_id":"c1","status":"open"}}`), &single); err != nil {
		t.Fatal(err)
	}
	if len(single.Contracts) != 1 || single.Contracts[0].ContractID != "c1" {
		t.Fatalf("want one coerced contract, got %+v", single.Contracts)
	}
	var none ContractsUpdate
	if err := json.Unmarshal([]byte(`{}`), &none); err != nil {
		t.Fatal(err)
	}
	if len(none.Contracts) != 0 {
		t.Fatalf("want no contracts, got %+v", none.Contracts)
	}
}
