// Copyright (c) 2025 BVK Chaitanya

package trading

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/apierr"
	"github.com/bvk/tradeapi/apitest"
	"github.com/bvk/tradeapi/transport"
	"github.com/shopspring/decimal"
)

func newService(t *testing.T, srv *apitest.Server) *Service {
	t.Helper()
	tc, err := transport.New(&transport.Options{BaseURL: srv.URL()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { tc.Close() })
	return New(tc)
}

func riseFallRequest() api.ProposalRequest {
	return api.ProposalRequest{
		ProductID:    api.ProductRiseFall,
		InstrumentID: "R_100",
		TradeType:    api.TradeRise,
		Amount:       decimal.NewFromInt(10),
		Duration:     5,
		DurationUnit: "t",
	}
}

func TestGetProposal(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodPost, "/trading/proposal", http.StatusOK,
		`{"data":{"product_id":"rise_fall","instrument_id":"R_100","variants":[{"proposal_id":"p1","trade_type":"rise","ask_price":"10","payout":"19.55"}]}}`)

	req := riseFallRequest()
	p, err := newService(t, srv).GetProposal(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Variants) != 1 || p.Variants[0].ProposalID != "p1" || !p.Variants[0].Payout.Equal(decimal.RequireFromString("19.55")) {
		t.Fatalf("unexpected proposal %+v", p)
	}
}

func TestStreamProposal(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleStream("/trading/proposal/stream", &apitest.Stream{
		Lines: []string{
			`data: {"data":{"product_id":"rise_fall","variants":{"proposal_id":"p1","ask_price":"10"}}}`,
			`data: {"data":{"product_id":"rise_fall","variants":{"proposal_id":"p2","ask_price":"10.2"}}}`,
		},
	})

	req := riseFallRequest()
	s, err := newService(t, srv).StreamProposal(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for p, err := range s.All() {
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, p.Variants[0].ProposalID)
	}
	if len(ids) != 2 || ids[1] != "p2" {
		t.Fatalf("unexpected proposals %v", ids)
	}

	sent, _ := srv.LastRequest("/trading/proposal/stream")
	if sent.Query.Get("duration") != "5" || sent.Query.Get("product_id") != api.ProductRiseFall || sent.Query.Get("amount") != "10" {
		t.Fatalf("unexpected query %v", sent.Query)
	}
}

func TestBuyValidation(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	s := newService(t, srv)
	for _, req := range []*api.BuyRequest{
		{ProposalRequest: api.ProposalRequest{ProductID: api.ProductRiseFall, Amount: decimal.NewFromInt(1), Duration: 1}},
		{ProposalRequest: api.ProposalRequest{InstrumentID: "R_100", Amount: decimal.NewFromInt(1)}},
		{ProposalRequest: api.ProposalRequest{ProductID: api.ProductRiseFall, InstrumentID: "R_100", Duration: 1}},
	} {
		if _, err := s.Buy(context.Background(), req); err == nil {
			t.Fatalf("want validation error for %+v", req)
		}
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("invalid buy requests must not reach the server, got %d requests", n)
	}
}

func TestBuy(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodPost, "/trading/contracts/buy", http.StatusOK,
		`{"data":{"contract_id":"c1","product_id":"rise_fall","instrument_id":"R_100","status":"open","buy_price":"10","balance_after":"990"}}`)

	req := &api.BuyRequest{ProposalRequest: riseFallRequest(), ProposalID: "p1"}
	r, err := newService(t, srv).Buy(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if r.ContractID != "c1" || !r.BalanceAfter.Equal(decimal.NewFromInt(990)) || !r.IsOpen() {
		t.Fatalf("unexpected buy result %+v", r)
	}

	sent, _ := srv.LastRequest("/trading/contracts/buy")
	var body map[string]any
	if err := json.Unmarshal(sent.Body, &body); err != nil {
		t.Fatal(err)
	}
	if body["instrument_id"] != "R_100" || body["proposal_id"] != "p1" {
		t.Fatalf("unexpected buy body %s", sent.Body)
	}
}

func TestBuyInsufficientBalance(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleError(http.MethodPost, "/trading/contracts/buy", http.StatusBadRequest, "insufficient_balance", "Not enough funds")

	req := &api.BuyRequest{ProposalRequest: riseFallRequest()}
	_, err := newService(t, srv).Buy(context.Background(), req)
	if !apierr.IsCode(err, "insufficient_balance") || apierr.StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSellAndCancel(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleFunc(http.MethodPost, "/trading/contracts/{id}/sell", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"contract_id":"c1","sold_for":"12.5","balance_after":"1002.5"}}`))
	})
	srv.HandleData(http.MethodPost, "/trading/contracts/{id}/cancel", map[string]string{"contract_id": "c2", "refund": "10"})

	s := newService(t, srv)
	sold, err := s.Sell(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if !sold.SoldFor.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected sell result %+v", sold)
	}
	req, ok := srv.LastRequest("/trading/contracts/c1/sell")
	if !ok || req.Vars["id"] != "c1" {
		t.Fatalf("unexpected sell request %+v", req)
	}

	cancelled, err := s.Cancel(context.Background(), "c2")
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.ContractID != "c2" || !cancelled.Refund.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected cancel result %+v", cancelled)
	}

	if _, err := s.Sell(context.Background(), ""); err == nil {
		t.Fatalf("want error for empty contract id")
	}
}

func TestListContracts(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodGet, "/trading/contracts/open", http.StatusOK,
		`{"data":{"contracts":[{"contract_id":"c1","status":"open"},{"contract_id":"c2","status":"open"}]}}`)
	srv.HandleRaw(http.MethodGet, "/trading/contracts/closed", http.StatusOK,
		`{"data":{"contracts":{"contract_id":"c3","status":"won","profit_loss":"9.5"}}}`)

	s := newService(t, srv)
	open, err := s.ListOpenContracts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 2 {
		t.Fatalf("want two open contracts, got %+v", open)
	}
	closed, err := s.ListClosedContracts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 1 || closed[0].Status != api.StatusWon {
		t.Fatalf("want one closed contract, got %+v", closed)
	}
}

func TestGetContract(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodGet, "/trading/contracts/c1", http.StatusOK,
		`{"data":{"contract_id":"c1","product_id":"multipliers","status":"open","multiplier":50,"commission":"0.1"}}`)
	srv.HandleRaw(http.MethodGet, "/trading/contracts/c9", http.StatusOK,
		`{"data":{"contract_id":"c9","product_id":"turbos","status":"open"}}`)

	s := newService(t, srv)
	d, err := s.GetContract(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	md, ok := d.Multiplier()
	if !ok || md.Multiplier != 50 {
		t.Fatalf("unexpected contract details %+v", d)
	}

	if _, err := s.GetContract(context.Background(), "c9"); !errors.Is(err, api.ErrUnknownProduct) {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
}

func TestStreamContracts(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleStream("/trading/contracts/stream", &apitest.Stream{
		Lines: []string{
			`data: {"contracts":[{"contract_id":"c1","status":"open"},{"contract_id":"c2","status":"open"}]}`,
			`data: {"data":{"contracts":{"contract_id":"c1","status":"sold"}}}`,
		},
	})

	s, err := newService(t, srv).StreamContracts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var sizes []int
	for u, err := range s.All() {
		if err != nil {
			t.Fatal(err)
		}
		sizes = append(sizes, len(u.Contracts))
	}
	if len(sizes) != 2 || sizes[0] != 2 || sizes[1] != 1 {
		t.Fatalf("unexpected updates %v", sizes)
	}
}
