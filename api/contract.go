// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/bvk/tradeapi/envelope"
	"github.com/shopspring/decimal"
)

// Contract statuses.
const (
	StatusOpen      = "open"
	StatusSold      = "sold"
	StatusWon       = "won"
	StatusLost      = "lost"
	StatusCancelled = "cancelled"
)

// Contract holds the fields common to all products.
type Contract struct {
	ContractID   string          `json:"contract_id"`
	ProductID    string          `json:"product_id"`
	InstrumentID string          `json:"instrument_id"`
	TradeType    string          `json:"trade_type,omitempty"`
	Status       string          `json:"status"`
	Currency     string          `json:"currency,omitempty"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	BidPrice     decimal.Decimal `json:"bid_price"`
	ProfitLoss   decimal.Decimal `json:"profit_loss"`

	EntrySpot *decimal.Decimal `json:"entry_spot,omitempty"`
	ExitSpot  *decimal.Decimal `json:"exit_spot,omitempty"`

	StartTime  int64 `json:"start_time"`
	ExpiryTime int64 `json:"expiry_time,omitempty"`
}

func (v *Contract) IsOpen() bool {
	return v.Status == StatusOpen
}

// ContractVariant is implemented by the product specific detail types.
type ContractVariant interface {
	Product() string
}

type MultiplierDetails struct {
	Multiplier int              `json:"multiplier"`
	Commission decimal.Decimal  `json:"commission"`
	StopOut    *decimal.Decimal `json:"stop_out,omitempty"`
	LimitOrder *LimitOrder      `json:"limit_order,omitempty"`

	// CancellationExpiry is zero when deal cancellation was not purchased.
	CancellationExpiry int64 `json:"cancellation_expiry,omitempty"`
}

func (MultiplierDetails) Product() string { return ProductMultipliers }

type AccumulatorDetails struct {
	GrowthRate  decimal.Decimal  `json:"growth_rate"`
	TickCount   int              `json:"tick_count"`
	HighBarrier decimal.Decimal  `json:"high_barrier"`
	LowBarrier  decimal.Decimal  `json:"low_barrier"`
	TakeProfit  *decimal.Decimal `json:"take_profit,omitempty"`
}

func (AccumulatorDetails) Product() string { return ProductAccumulators }

type RiseFallDetails struct {
	Duration     int             `json:"duration"`
	DurationUnit string          `json:"duration_unit"`
	Payout       decimal.Decimal `json:"payout"`
	Barrier      decimal.Decimal `json:"barrier"`
}

func (RiseFallDetails) Product() string { return ProductRiseFall }

// ContractDetails is a contract along with its product specific fields. The
// variant is chosen by the product_id field; unknown products fail to
// decode.
type ContractDetails struct {
	Contract

	Variant ContractVariant
}

func (v *ContractDetails) UnmarshalJSON(raw []byte) error {
	var c Contract
	if err := json.Unmarshal(raw, &c); err != nil {
		return err
	}

	var variant ContractVariant
	var err error
	switch c.ProductID {
	case ProductMultipliers:
		variant, err = decodeVariant[MultiplierDetails](raw)
	case ProductAccumulators:
		variant, err = decodeVariant[AccumulatorDetails](raw)
	case ProductRiseFall:
		variant, err = decodeVariant[RiseFallDetails](raw)
	default:
		return fmt.Errorf("contract %q: %w: %q", c.ContractID, ErrUnknownProduct, c.ProductID)
	}
	if err != nil {
		return fmt.Errorf("could not decode %s contract %q: %w", c.ProductID, c.ContractID, err)
	}

	v.Contract = c
	v.Variant = variant
	return nil
}

func decodeVariant[T ContractVariant](raw []byte) (ContractVariant, error) {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	return *v, nil
}

func (v ContractDetails) MarshalJSON() ([]byte, error) {
	fields, err := toFields(v.Contract)
	if err != nil {
		return nil, err
	}
	if v.Variant != nil {
		if v.Variant.Product() != v.ProductID {
			return nil, fmt.Errorf("contract %q has product %q but %q details", v.ContractID, v.ProductID, v.Variant.Product())
		}
		extra, err := toFields(v.Variant)
		if err != nil {
			return nil, err
		}
		maps.Copy(fields, extra)
	}
	return json.Marshal(fields)
}

func toFields(v any) (map[string]json.RawMessage, error) {
	js, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(js, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (v *ContractDetails) Multiplier() (MultiplierDetails, bool) {
	d, ok := v.Variant.(MultiplierDetails)
	return d, ok
}

func (v *ContractDetails) Accumulator() (AccumulatorDetails, bool) {
	d, ok := v.Variant.(AccumulatorDetails)
	return d, ok
}

func (v *ContractDetails) RiseFall() (RiseFallDetails, bool) {
	d, ok := v.Variant.(RiseFallDetails)
	return d, ok
}

// ContractsUpdate is one event of the contracts stream.
type ContractsUpdate struct {
	Contracts envelope.List[Contract] `json:"contracts"`
}
