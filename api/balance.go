// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/shopspring/decimal"

// Balance keeps the amount exactly as the server formatted it.
type Balance struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// Amount parses the balance as a decimal.
func (v *Balance) Amount() (decimal.Decimal, error) {
	return decimal.NewFromString(v.Balance)
}

type ResetResult struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
	Message  string `json:"message,omitempty"`
}
