// Copyright (c) 2025 BVK Chaitanya

// Package api defines the data types exchanged with the trading API.
//
// Money and prices use decimal.Decimal. Timestamps are unix milliseconds, as
// sent by the server. Field names follow the server's snake_case keys.
package api

import (
	"errors"
	"time"
)

// Product ids.
const (
	ProductMultipliers  = "multipliers"
	ProductAccumulators = "accumulators"
	ProductRiseFall     = "rise_fall"
)

// ErrUnknownProduct is returned when a product id has no known schema.
var ErrUnknownProduct = errors.New("unknown product")

// IsKnownProduct returns true if the product id has a known schema.
func IsKnownProduct(id string) bool {
	switch id {
	case ProductMultipliers, ProductAccumulators, ProductRiseFall:
		return true
	}
	return false
}

// UnixMilli converts a server timestamp into a time.Time.
func UnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms)
}
