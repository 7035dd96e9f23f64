// Copyright (c) 2025 BVK Chaitanya

package balance

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

type Get struct {
	cmdutil.ClientFlags
}

func (c *Get) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("get", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "get", fset, cli.CmdFunc(c.run)
}

func (c *Get) Purpose() string {
	return "Print the account balance."
}

func (c *Get) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	b, err := client.Accounting.GetBalance(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, b)
}

type Stream struct {
	cmdutil.ClientFlags
	cmdutil.StreamFlags
}

func (c *Stream) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stream", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.StreamFlags.SetFlags(fset)
	return "stream", fset, cli.CmdFunc(c.run)
}

func (c *Stream) Purpose() string {
	return "Print account balance updates as they happen."
}

func (c *Stream) run(ctx context.Context, args []string) error {
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

	s, err := client.Accounting.StreamBalance(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintStream(os.Stdout, s, &c.StreamFlags)
}
