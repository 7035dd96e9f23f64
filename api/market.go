// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type Instrument struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Market      string `json:"market,omitempty"`
	PipSize     int    `json:"pip_size"`
	IsOpen      bool   `json:"is_open"`
}

type Range struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains returns true if v is within the range, inclusive.
func (r *Range) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

type ConfigDefaults struct {
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Duration     int              `json:"duration,omitempty"`
	DurationUnit string           `json:"duration_unit,omitempty"`
	Multiplier   int              `json:"multiplier,omitempty"`
	GrowthRate   *decimal.Decimal `json:"growth_rate,omitempty"`
}

type ConfigValidations struct {
	Amount      Range             `json:"amount"`
	Duration    *Range            `json:"duration,omitempty"`
	Multipliers []int             `json:"multipliers,omitempty"`
	GrowthRates []decimal.Decimal `json:"growth_rates,omitempty"`
}

type ProductConfig struct {
	ProductID    string            `json:"product_id"`
	InstrumentID string            `json:"instrument_id"`
	Defaults     ConfigDefaults    `json:"defaults"`
	Validations  ConfigValidations `json:"validations"`
}

// Candle is one OHLC point. OpenTime is the start of the candle interval.
type Candle struct {
	OpenTime int64           `json:"open_time"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
}

func (v *Candle) Time() time.Time {
	return UnixMilli(v.OpenTime)
}

type Tick struct {
	EpochMs int64           `json:"epoch_ms"`
	Ask     decimal.Decimal `json:"ask"`
	Bid     decimal.Decimal `json:"bid"`
	Price   decimal.Decimal `json:"price"`
}

func (v *Tick) Time() time.Time {
	return UnixMilli(v.EpochMs)
}

// CandlesRequest selects candles of Granularity seconds in the closed
// interval [FromEpochMs, ToEpochMs].
type CandlesRequest struct {
	InstrumentID string `json:"instrument_id"`
	FromEpochMs  int64  `json:"from_epoch_ms"`
	ToEpochMs    int64  `json:"to_epoch_ms"`
	Granularity  int    `json:"granularity"`
}

func (v *CandlesRequest) Check() error {
	if v.InstrumentID == "" {
		return fmt.Errorf("instrument_id is required")
	}
	if v.ToEpochMs < v.FromEpochMs {
		return fmt.Errorf("to_epoch_ms cannot be before from_epoch_ms")
	}
	if v.Granularity <= 0 {
		return fmt.Errorf("granularity must be positive")
	}
	return nil
}

type TicksRequest struct {
	InstrumentID string `json:"instrument_id"`
	FromEpochMs  int64  `json:"from_epoch_ms"`
	ToEpochMs    int64  `json:"to_epoch_ms"`
}

func (v *TicksRequest) Check() error {
	if v.InstrumentID == "" {
		return fmt.Errorf("instrument_id is required")
	}
	if v.ToEpochMs < v.FromEpochMs {
		return fmt.Errorf("to_epoch_ms cannot be before from_epoch_ms")
	}
	return nil
}
