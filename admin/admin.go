// Copyright (c) 2025 BVK Chaitanya

// Package admin implements account administration endpoints.
package admin

import (
	"context"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/transport"
)

const resetPath = "/admin/reset"

type Service struct {
	tc *transport.Client
}

func New(tc *transport.Client) *Service {
	return &Service{tc: tc}
}

// Reset restores the account to its initial balance and closes all
// contracts.
func (s *Service) Reset(ctx context.Context) (*api.ResetResult, error) {
	return transport.PostJSON[api.ResetResult](ctx, s.tc, resetPath, nil)
}
