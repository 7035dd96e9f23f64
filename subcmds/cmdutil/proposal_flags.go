// Copyright (c) 2025 BVK Chaitanya

package cmdutil

import (
	"flag"
	"fmt"

	"github.com/bvk/tradeapi/api"
	"github.com/shopspring/decimal"
)

// ProposalFlags describe a contract to price or buy.
type ProposalFlags struct {
	product      string
	instrument   string
	tradeType    string
	amount       string
	currency     string
	duration     int
	durationUnit string
	multiplier   int
	growthRate   string
	takeProfit   string
	stopLoss     string
}

func (pf *ProposalFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&pf.product, "product", api.ProductRiseFall, "product id (multipliers, accumulators or rise_fall)")
	fset.StringVar(&pf.instrument, "instrument", "", "instrument id")
	fset.StringVar(&pf.tradeType, "trade-type", "", "trade type, eg: rise, fall, up, down")
	fset.StringVar(&pf.amount, "amount", "", "stake amount")
	fset.StringVar(&pf.currency, "currency", "", "stake currency")
	fset.IntVar(&pf.duration, "duration", 0, "contract duration for rise_fall")
	fset.StringVar(&pf.durationUnit, "duration-unit", "t", "duration unit for rise_fall (t, s, m, h or d)")
	fset.IntVar(&pf.multiplier, "multiplier", 0, "multiplier for multipliers")
	fset.StringVar(&pf.growthRate, "growth-rate", "", "growth rate for accumulators")
	fset.StringVar(&pf.takeProfit, "take-profit", "", "take profit amount")
	fset.StringVar(&pf.stopLoss, "stop-loss", "", "stop loss amount")
}

// ParseOptionalDecimal parses a decimal flag value. An empty value is nil.
func ParseOptionalDecimal(name, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse -%s value %q as a decimal: %w", name, s, err)
	}
	return &d, nil
}

// Request returns the validated proposal request.
func (pf *ProposalFlags) Request() (*api.ProposalRequest, error) {
	if pf.amount == "" {
		return nil, fmt.Errorf("-amount flag is required")
	}
	amount, err := decimal.NewFromString(pf.amount)
	if err != nil {
		return nil, fmt.Errorf("could not parse -amount value %q as a decimal: %w", pf.amount, err)
	}
	req := &api.ProposalRequest{
		ProductID:    pf.product,
		InstrumentID: pf.instrument,
		TradeType:    pf.tradeType,
		Amount:       amount,
		Currency:     pf.currency,
		Multiplier:   pf.multiplier,
	}
	if pf.product == api.ProductRiseFall {
		req.Duration = pf.duration
		req.DurationUnit = pf.durationUnit
	}
	if req.GrowthRate, err = ParseOptionalDecimal("growth-rate", pf.growthRate); err != nil {
		return nil, err
	}
	tp, err := ParseOptionalDecimal("take-profit", pf.takeProfit)
	if err != nil {
		return nil, err
	}
	sl, err := ParseOptionalDecimal("stop-loss", pf.stopLoss)
	if err != nil {
		return nil, err
	}
	if tp != nil || sl != nil {
		req.LimitOrder = &api.LimitOrder{TakeProfit: tp, StopLoss: sl}
	}
	if err := req.Check(); err != nil {
		return nil, err
	}
	return req, nil
}
