// Copyright (c) 2023 BVK Chaitanya

package market

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bvk/tradeapi/api"
	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type intervalFlags struct {
	instrument string

	start string
	end   string
}

func (f *intervalFlags) setFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.instrument, "instrument", "", "instrument id")
	fset.StringVar(&f.start, "start", "", "start time as RFC3339 value (default one hour before end)")
	fset.StringVar(&f.end, "end", "", "end time as RFC3339 value (default now)")
}

// interval returns the start and end times in unix milliseconds.
func (f *intervalFlags) interval() (int64, int64, error) {
	if f.instrument == "" {
		return 0, 0, fmt.Errorf("-instrument flag is required")
	}

	endTime := time.Now()
	if f.end != "" {
		v, err := time.Parse(time.RFC3339, f.end)
		if err != nil {
			return 0, 0, fmt.Errorf("could not parse end time as RFC3339 value: %w", err)
		}
		endTime = v
	}

	startTime := endTime.Add(-time.Hour)
	if f.start != "" {
		v, err := time.Parse(time.RFC3339, f.start)
		if err != nil {
			return 0, 0, fmt.Errorf("could not parse start time as RFC3339 value: %w", err)
		}
		startTime = v
	}
	if endTime.Before(startTime) {
		return 0, 0, fmt.Errorf("end time cannot be before the start time")
	}
	return startTime.UnixMilli(), endTime.UnixMilli(), nil
}

type Candles struct {
	cmdutil.ClientFlags
	intervalFlags

	granularity time.Duration
}

func (c *Candles) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("candles", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.intervalFlags.setFlags(fset)
	fset.DurationVar(&c.granularity, "granularity", time.Minute, "candle interval")
	return "candles", fset, cli.CmdFunc(c.run)
}

func (c *Candles) Purpose() string {
	return "Print historical OHLC candles for an instrument."
}

func (c *Candles) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	from, to, err := c.interval()
	if err != nil {
		return err
	}
	if c.granularity < time.Second {
		return fmt.Errorf("granularity must be at least one second")
	}

	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	req := &api.CandlesRequest{
		InstrumentID: c.instrument,
		FromEpochMs:  from,
		ToEpochMs:    to,
		Granularity:  int(c.granularity / time.Second),
	}
	candles, err := client.Market.GetCandles(ctx, req)
	if err != nil {
		return fmt.Errorf("could not get candles: %w", err)
	}
	return cmdutil.PrintJSON(os.Stdout, candles)
}

type Ticks struct {
	cmdutil.ClientFlags
	intervalFlags
}

func (c *Ticks) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("ticks", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	c.intervalFlags.setFlags(fset)
	return "ticks", fset, cli.CmdFunc(c.run)
}

func (c *Ticks) Purpose() string {
	return "Print historical ticks for an instrument."
}

func (c *Ticks) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	from, to, err := c.interval()
	if err != nil {
		return err
	}

	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	req := &api.TicksRequest{
		InstrumentID: c.instrument,
		FromEpochMs:  from,
		ToEpochMs:    to,
	}
	ticks, err := client.Market.GetTicks(ctx, req)
	if err != nil {
		return fmt.Errorf("could not get ticks: %w", err)
	}
	return cmdutil.PrintJSON(os.Stdout, ticks)
}
