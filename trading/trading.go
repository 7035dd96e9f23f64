// Copyright (c) 2025 BVK Chaitanya

// Package trading implements proposal and contract endpoints.
package trading

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/envelope"
	"github.com/bvk/tradeapi/sse"
	"github.com/bvk/tradeapi/transport"
)

const (
	proposalPath        = "/trading/proposal"
	proposalStreamPath  = "/trading/proposal/stream"
	buyPath             = "/trading/contracts/buy"
	openContractsPath   = "/trading/contracts/open"
	closedContractsPath = "/trading/contracts/closed"
	contractsStreamPath = "/trading/contracts/stream"
	contractsPath       = "/trading/contracts"
)

type contractsPayload struct {
	Contracts envelope.List[api.Contract] `json:"contracts"`
}

type Service struct {
	tc *transport.Client
}

func New(tc *transport.Client) *Service {
	return &Service{tc: tc}
}

func contractPath(id string, action ...string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("contract id is required")
	}
	return path.Join(append([]string{contractsPath, url.PathEscape(id)}, action...)...), nil
}

// GetProposal returns a price quote for the request.
func (s *Service) GetProposal(ctx context.Context, req *api.ProposalRequest) (*api.Proposal, error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	return transport.PostJSON[api.Proposal](ctx, s.tc, proposalPath, req)
}

// StreamProposal subscribes to live price quotes for the request.
func (s *Service) StreamProposal(ctx context.Context, req *api.ProposalRequest) (*sse.Stream[*api.Proposal], error) {
	if err := req.Check(); err != nil {
		return nil, err
	}
	return transport.Subscribe[api.Proposal](ctx, s.tc, proposalStreamPath, req.Query())
}

// Buy purchases a contract. The request is validated before any network
// call.
func (s *Service) Buy(ctx context.Context, req *api.BuyRequest) (*api.BuyResult, error) {
	if err := req.Check(); err != nil {
		return nil, fmt.Errorf("invalid buy request: %w", err)
	}
	return transport.PostJSON[api.BuyResult](ctx, s.tc, buyPath, req)
}

// Sell closes an open contract at the current bid price.
func (s *Service) Sell(ctx context.Context, contractID string) (*api.SellResult, error) {
	p, err := contractPath(contractID, "sell")
	if err != nil {
		return nil, err
	}
	return transport.PostJSON[api.SellResult](ctx, s.tc, p, nil)
}

// Cancel cancels a contract within its cancellation window.
func (s *Service) Cancel(ctx context.Context, contractID string) (*api.CancelResult, error) {
	p, err := contractPath(contractID, "cancel")
	if err != nil {
		return nil, err
	}
	return transport.PostJSON[api.CancelResult](ctx, s.tc, p, nil)
}

func (s *Service) listContracts(ctx context.Context, endpoint string) ([]api.Contract, error) {
	v, err := transport.GetJSON[contractsPayload](ctx, s.tc, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return v.Contracts, nil
}

func (s *Service) ListOpenContracts(ctx context.Context) ([]api.Contract, error) {
	return s.listContracts(ctx, openContractsPath)
}

func (s *Service) ListClosedContracts(ctx context.Context) ([]api.Contract, error) {
	return s.listContracts(ctx, closedContractsPath)
}

// GetContract returns the contract with its product specific details.
// Contracts of unknown products fail with api.ErrUnknownProduct.
func (s *Service) GetContract(ctx context.Context, contractID string) (*api.ContractDetails, error) {
	p, err := contractPath(contractID)
	if err != nil {
		return nil, err
	}
	return transport.GetJSON[api.ContractDetails](ctx, s.tc, p, nil)
}

// StreamContracts subscribes to updates of the account's contracts.
func (s *Service) StreamContracts(ctx context.Context) (*sse.Stream[*api.ContractsUpdate], error) {
	return transport.Subscribe[api.ContractsUpdate](ctx, s.tc, contractsStreamPath, nil)
}
