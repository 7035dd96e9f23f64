// Copyright (c) 2025 BVK Chaitanya

package trade

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Proposal struct {
	cmdutil.ClientFlags
	cmdutil.ProposalFlags
}

func (c *Proposal) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("proposal", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.ProposalFlags.SetFlags(fset)
	return "proposal", fset, cli.CmdFunc(c.run)
}

func (c *Proposal) Purpose() string {
	return "Print a price quote for a contract."
}

func (c *Proposal) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	req, err := c.ProposalFlags.Request()
	if err != nil {
		return err
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	p, err := client.Trading.GetProposal(ctx, req)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, p)
}

type StreamProposal struct {
	cmdutil.ClientFlags
	cmdutil.ProposalFlags
	cmdutil.StreamFlags
}

func (c *StreamProposal) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stream-proposal", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.ProposalFlags.SetFlags(fset)
	c.StreamFlags.SetFlags(fset)
	return "stream-proposal", fset, cli.CmdFunc(c.run)
}

func (c *StreamProposal) Purpose() string {
	return "Print live price quotes for a contract."
}

func (c *StreamProposal) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	req, err := c.ProposalFlags.Request()
	if err != nil {
		return err
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

	s, err := client.Trading.StreamProposal(ctx, req)
	if err != nil {
		return err
	}
	return cmdutil.PrintStream(os.Stdout, s, &c.StreamFlags)
}
