// Copyright (c) 2025 BVK Chaitanya

// Package client bundles all trading API services over one shared
// transport.
package client

import (
	"github.com/bvk/tradeapi/accounting"
	"github.com/bvk/tradeapi/admin"
	"github.com/bvk/tradeapi/market"
	"github.com/bvk/tradeapi/trading"
	"github.com/bvk/tradeapi/transport"
)

type Client struct {
	tc *transport.Client

	Accounting *accounting.Service
	Market     *market.Service
	Trading    *trading.Service
	Admin      *admin.Service
}

// New creates the transport and all services.
func New(opts *transport.Options) (*Client, error) {
	tc, err := transport.New(opts)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(tc), nil
}

// NewWithTransport creates all services over an existing transport.
func NewWithTransport(tc *transport.Client) *Client {
	return &Client{
		tc:         tc,
		Accounting: accounting.New(tc),
		Market:     market.New(tc),
		Trading:    trading.New(tc),
		Admin:      admin.New(tc),
	}
}

// Transport returns the shared transport.
func (c *Client) Transport() *transport.Client {
	return c.tc
}

// Close releases pooled connections. Requests in flight may fail.
func (c *Client) Close() error {
	return c.tc.Close()
}
