// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"fmt"
	"strconv"

	"github.com/bvk/tradeapi/envelope"
	"github.com/shopspring/decimal"
)

// Trade types.
const (
	TradeRise = "rise"
	TradeFall = "fall"
	TradeUp   = "up"
	TradeDown = "down"
)

// LimitOrder closes a contract automatically on profit or loss. Zero values
// are omitted.
type LimitOrder struct {
	TakeProfit *decimal.Decimal `json:"take_profit,omitempty"`
	StopLoss   *decimal.Decimal `json:"stop_loss,omitempty"`
}

type ProposalRequest struct {
	ProductID    string          `json:"product_id"`
	InstrumentID string          `json:"instrument_id"`
	TradeType    string          `json:"trade_type,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency,omitempty"`

	// Duration applies to rise_fall contracts.
	Duration     int    `json:"duration,omitempty"`
	DurationUnit string `json:"duration_unit,omitempty"`

	// Multiplier applies to multipliers contracts.
	Multiplier int `json:"multiplier,omitempty"`

	// GrowthRate applies to accumulators contracts.
	GrowthRate *decimal.Decimal `json:"growth_rate,omitempty"`

	LimitOrder *LimitOrder `json:"limit_order,omitempty"`
}

// Check validates the fields required by the server for every product and
// the product specific fields.
func (v *ProposalRequest) Check() error {
	if v.InstrumentID == "" {
		return fmt.Errorf("instrument_id is required")
	}
	if v.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if !IsKnownProduct(v.ProductID) {
		return fmt.Errorf("%w: %q", ErrUnknownProduct, v.ProductID)
	}
	if !v.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	switch v.ProductID {
	case ProductMultipliers:
		if v.Multiplier <= 0 {
			return fmt.Errorf("multiplier must be positive for %s", v.ProductID)
		}
	case ProductAccumulators:
		if v.GrowthRate == nil || !v.GrowthRate.IsPositive() {
			return fmt.Errorf("growth_rate must be positive for %s", v.ProductID)
		}
	case ProductRiseFall:
		if v.Duration <= 0 {
			return fmt.Errorf("duration must be positive for %s", v.ProductID)
		}
	}
	return nil
}

// Query flattens the request into query parameters for the proposal stream.
// Limit order fields use dotted keys.
func (v *ProposalRequest) Query() map[string]string {
	m := map[string]string{
		"product_id":    v.ProductID,
		"instrument_id": v.InstrumentID,
		"amount":        v.Amount.String(),
	}
	if v.TradeType != "" {
		m["trade_type"] = v.TradeType
	}
	if v.Currency != "" {
		m["currency"] = v.Currency
	}
	if v.Duration != 0 {
		m["duration"] = strconv.Itoa(v.Duration)
	}
	if v.DurationUnit != "" {
		m["duration_unit"] = v.DurationUnit
	}
	if v.Multiplier != 0 {
		m["multiplier"] = strconv.Itoa(v.Multiplier)
	}
	if v.GrowthRate != nil {
		m["growth_rate"] = v.GrowthRate.String()
	}
	if lo := v.LimitOrder; lo != nil {
		if lo.TakeProfit != nil {
			m["limit_order.take_profit"] = lo.TakeProfit.String()
		}
		if lo.StopLoss != nil {
			m["limit_order.stop_loss"] = lo.StopLoss.String()
		}
	}
	return m
}

// ProposalVariant is the quote for one trade type.
type ProposalVariant struct {
	ProposalID string           `json:"proposal_id"`
	TradeType  string           `json:"trade_type"`
	AskPrice   decimal.Decimal  `json:"ask_price"`
	Payout     *decimal.Decimal `json:"payout,omitempty"`
	Spot       decimal.Decimal  `json:"spot"`
	SpotTime   int64            `json:"spot_time"`
}

type Proposal struct {
	ProductID    string                         `json:"product_id"`
	InstrumentID string                         `json:"instrument_id"`
	Variants     envelope.List[ProposalVariant] `json:"variants"`
}

// BuyRequest buys a contract. When ProposalID is empty the server prices the
// contract from the embedded proposal fields.
type BuyRequest struct {
	ProposalRequest

	ProposalID string `json:"proposal_id,omitempty"`

	// MaxPrice rejects the purchase if the ask price moved above it.
	MaxPrice *decimal.Decimal `json:"price,omitempty"`
}

// Check validates the request before it is sent.
func (v *BuyRequest) Check() error {
	if err := v.ProposalRequest.Check(); err != nil {
		return err
	}
	if v.MaxPrice != nil && !v.MaxPrice.IsPositive() {
		return fmt.Errorf("price must be positive when set")
	}
	return nil
}

type BuyResult struct {
	Contract

	BalanceAfter decimal.Decimal `json:"balance_after"`
}

type SellResult struct {
	ContractID   string          `json:"contract_id"`
	SoldFor      decimal.Decimal `json:"sold_for"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

type CancelResult struct {
	ContractID   string          `json:"contract_id"`
	Refund       decimal.Decimal `json:"refund"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}
