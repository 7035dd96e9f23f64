// Copyright (c) 2025 BVK Chaitanya

// Package market implements product, instrument and price history endpoints.
package market

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/envelope"
	"github.com/bvk/tradeapi/sse"
	"github.com/bvk/tradeapi/transport"
)

const (
	productsPath      = "/market/products"
	instrumentsPath   = "/market/instruments"
	productConfigPath = "/market/products/config"
	candlesPath       = "/market/history/candles"
	ticksPath         = "/market/history/ticks"
	candlesStreamPath = "/market/candles/stream"
	ticksStreamPath   = "/market/ticks/stream"
)

type productsPayload struct {
	Products envelope.List[api.Product] `json:"products"`
}

type instrumentsPayload struct {
	Instruments envelope.List[api.Instrument] `json:"instruments"`
}

type candlesPayload struct {
	Candles envelope.List[api.Candle] `json:"candles"`
}

type ticksPayload struct {
	Ticks envelope.List[api.Tick] `json:"ticks"`
}

type Service struct {
	tc *transport.Client
}

func New(tc *transport.Client) *Service {
	return &Service{tc: tc}
}

func (s *Service) ListProducts(ctx context.Context) ([]api.Product, error) {
	v, err := transport.GetJSON[productsPayload](ctx, s.tc, productsPath, nil)
	if err != nil {
		return nil, err
	}
	return v.Products, nil
}

// ListInstruments returns instruments tradable with the product. All
// instruments are returned when productID is empty.
func (s *Service) ListInstruments(ctx context.Context, productID string) ([]api.Instrument, error) {
	var params map[string]string
	if productID != "" {
		params = map[string]string{"product_id": productID}
	}
	v, err := transport.GetJSON[instrumentsPayload](ctx, s.tc, instrumentsPath, params)
	if err != nil {
		return nil, err
	}
	return v.Instruments, nil
}

func (s *Service) GetProductConfig(ctx context.Context, productID, instrumentID string) (*api.ProductConfig, error) {
	if productID == "" || instrumentID == "" {
		return nil, fmt.Errorf("product id and instrument id are required")
	}
	params := map[string]string{
		"product_id":    productID,
		"instrument_id": instrumentID,
	}
	return transport.GetJSON[api.ProductConfig](ctx, s.tc, productConfigPath, params)
}

// GetCandles returns historical candles in chronological order as sent by the
// server.
func (s *Service) GetCandles(ctx context.Context, req *api.CandlesRequest) ([]api.Candle, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	v, err := transport.PostJSON[candlesPayload](ctx, s.tc, candlesPath, req)
	if err != nil {
		return nil, err
	}
	return v.Candles, nil
}

func (s *Service) GetTicks(ctx context.Context, req *api.TicksRequest) ([]api.Tick, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	v, err := transport.PostJSON[ticksPayload](ctx, s.tc, ticksPath, req)
	if err != nil {
		return nil, err
	}
	return v.Ticks, nil
}

// StreamCandles subscribes to live candles of granularity seconds.
func (s *Service) StreamCandles(ctx context.Context, instrumentID string, granularity int) (*sse.Stream[*api.Candle], error) {
	if instrumentID == "" {
		return nil, fmt.Errorf("instrument id is required")
	}
	if granularity <= 0 {
		return nil, fmt.Errorf("granularity must be positive")
	}
	params := map[string]string{
		"instrument_id": instrumentID,
		"granularity":   strconv.Itoa(granularity),
	}
	return transport.Subscribe[api.Candle](ctx, s.tc, candlesStreamPath, params)
}

// StreamTicks subscribes to live ticks.
func (s *Service) StreamTicks(ctx context.Context, instrumentID string) (*sse.Stream[*api.Tick], error) {
	if instrumentID == "" {
		return nil, fmt.Errorf("instrument id is required")
	}
	params := map[string]string{"instrument_id": instrumentID}
	return transport.Subscribe[api.Tick](ctx, s.tc, ticksStreamPath, params)
}
