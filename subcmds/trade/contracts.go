// Copyright (c) 2025 BVK Chaitanya

package trade

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Buy struct {
	cmdutil.ClientFlags
	cmdutil.ProposalFlags

	proposalID string
	maxPrice   string
}

func (c *Buy) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("buy", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.ProposalFlags.SetFlags(fset)
	fset.StringVar(&c.proposalID, "proposal-id", "", "buy at the price of this proposal")
	fset.StringVar(&c.maxPrice, "max-price", "", "maximum price to pay")
	return "buy", fset, cli.CmdFunc(c.run)
}

func (c *Buy) Purpose() string {
	return "Buy a contract."
}

func (c *Buy) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	preq, err := c.ProposalFlags.Request()
	if err != nil {
		return err
	}
	maxPrice, err := cmdutil.ParseOptionalDecimal("max-price", c.maxPrice)
	if err != nil {
		return err
	}
	req := &api.BuyRequest{
		ProposalRequest: *preq,
		ProposalID:      c.proposalID,
		MaxPrice:        maxPrice,
	}

	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	r, err := client.Trading.Buy(ctx, req)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, r)
}

type Sell struct {
	cmdutil.ClientFlags
}

func (c *Sell) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("sell", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "sell", fset, cli.CmdFunc(c.run)
}

func (c *Sell) Purpose() string {
	return "Sell open contracts at the current price."
}

func (c *Sell) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("this command takes one or more contract id arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	for _, id := range args {
		r, err := client.Trading.Sell(ctx, id)
		if err != nil {
			return fmt.Errorf("could not sell contract %q: %w", id, err)
		}
		if err := cmdutil.PrintJSON(os.Stdout, r); err != nil {
			return err
		}
	}
	return nil
}

type Cancel struct {
	cmdutil.ClientFlags
}

func (c *Cancel) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("cancel", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "cancel", fset, cli.CmdFunc(c.run)
}

func (c *Cancel) Purpose() string {
	return "Cancel contracts within their cancellation window."
}

func (c *Cancel) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("this command takes one or more contract id arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	for _, id := range args {
		r, err := client.Trading.Cancel(ctx, id)
		if err != nil {
			return fmt.Errorf("could not cancel contract %q: %w", id, err)
		}
		if err := cmdutil.PrintJSON(os.Stdout, r); err != nil {
			return err
		}
	}
	return nil
}

type Open struct {
	cmdutil.ClientFlags
}

func (c *Open) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("open", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "open", fset, cli.CmdFunc(c.run)
}

func (c *Open) Purpose() string {
	return "List open contracts."
}

func (c *Open) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	contracts, err := client.Trading.ListOpenContracts(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, contracts)
}

type Closed struct {
	cmdutil.ClientFlags
}

func (c *Closed) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("closed", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "closed", fset, cli.CmdFunc(c.run)
}

func (c *Closed) Purpose() string {
	return "List closed contracts."
}

func (c *Closed) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	contracts, err := client.Trading.ListClosedContracts(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, contracts)
}

type Get struct {
	cmdutil.ClientFlags
}

func (c *Get) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("get", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "get", fset, cli.CmdFunc(c.run)
}

func (c *Get) Purpose() string {
	return "Print contract details."
}

func (c *Get) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("this command takes one or more contract id arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	for _, id := range args {
		d, err := client.Trading.GetContract(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get contract %q: %w", id, err)
		}
		if err := cmdutil.PrintJSON(os.Stdout, d); err != nil {
			return err
		}
	}
	return nil
}

type StreamContracts struct {
	cmdutil.ClientFlags
	cmdutil.StreamFlags
}

func (c *StreamContracts) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stream-contracts", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.StreamFlags.SetFlags(fset)
	return "stream-contracts", fset, cli.CmdFunc(c.run)
}

func (c *StreamContracts) Purpose() string {
	return "Print contract updates as they happen."
}

func (c *StreamContracts) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := c.StreamFlags.Context(ctx)
	defer cancel()

	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	s, err := client.Trading.StreamContracts(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintStream(os.Stdout, s, &c.StreamFlags)
}
