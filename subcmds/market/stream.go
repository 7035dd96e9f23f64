// Copyright (c) 2025 BVK Chaitanya

package market

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type StreamCandles struct {
	cmdutil.ClientFlags
	cmdutil.StreamFlags

	instrument  string
	granularity time.Duration
}

func (c *StreamCandles) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stream-candles", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.StreamFlags.SetFlags(fset)
	fset.StringVar(&c.instrument, "instrument", "", "instrument id")
	fset.DurationVar(&c.granularity, "granularity", time.Minute, "candle interval")
	return "stream-candles", fset, cli.CmdFunc(c.run)
}

func (c *StreamCandles) Purpose() string {
	return "Print live OHLC candles for an instrument."
}

func (c *StreamCandles) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if c.instrument == "" {
		return fmt.Errorf("-instrument flag is required")
	}
	if c.granularity < time.Second {
		return fmt.Errorf("granularity must be at least one second")
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

	s, err := client.Market.StreamCandles(ctx, c.instrument, int(c.granularity/time.Second))
	if err != nil {
		return err
	}
	return cmdutil.PrintStream(os.Stdout, s, &c.StreamFlags)
}

type StreamTicks struct {
	cmdutil.ClientFlags
	cmdutil.StreamFlags

	instrument string
}

func (c *StreamTicks) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("stream-ticks", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.StreamFlags.SetFlags(fset)
	fset.StringVar(&c.instrument, "instrument", "", "instrument id")
	return "stream-ticks", fset, cli.CmdFunc(c.run)
}

func (c *StreamTicks) Purpose() string {
	return "Print live ticks for an instrument."
}

func (c *StreamTicks) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if c.instrument == "" {
		return fmt.Errorf("-instrument flag is required")
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

	s, err := client.Market.StreamTicks(ctx, c.instrument)
	if err != nil {
		return err
	}
	return cmdutil.PrintStream(os.Stdout, s, &c.StreamFlags)
}
