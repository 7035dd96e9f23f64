// Copyright (c) 2025 BVK Chaitanya

// Package accounting implements the account balance endpoints.
package accounting

import (
	"context"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/sse"
	"github.com/bvk/tradeapi/transport"
)

const (
	balancePath       = "/accounting/balance"
	balanceStreamPath = "/accounting/balance/stream"
)

type Service struct {
	tc *transport.Client
}

func New(tc *transport.Client) *Service {
	return &Service{tc: tc}
}

// GetBalance returns the current account balance.
func (s *Service) GetBalance(ctx context.Context) (*api.Balance, error) {
	return transport.GetJSON[api.Balance](ctx, s.tc, balancePath, nil)
}

// StreamBalance subscribes to balance updates. Caller must close the stream.
func (s *Service) StreamBalance(ctx context.Context) (*sse.Stream[*api.Balance], error) {
	return transport.Subscribe[api.Balance](ctx, s.tc, balanceStreamPath, nil)
}
