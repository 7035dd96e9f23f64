// Copyright (c) 2025 BVK Chaitanya

package market

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Products struct {
	cmdutil.ClientFlags
}

func (c *Products) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("products", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	return "products", fset, cli.CmdFunc(c.run)
}

func (c *Products) Purpose() string {
	return "List the tradable products."
}

func (c *Products) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	products, err := client.Market.ListProducts(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, products)
}

type Instruments struct {
	cmdutil.ClientFlags

	product string
}

func (c *Instruments) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("instruments", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.product, "product", "", "list only instruments for this product")
	return "instruments", fset, cli.CmdFunc(c.run)
}

func (c *Instruments) Purpose() string {
	return "List the tradable instruments."
}

func (c *Instruments) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	instruments, err := client.Market.ListInstruments(ctx, c.product)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, instruments)
}

type Config struct {
	cmdutil.ClientFlags

	product    string
	instrument string
}

func (c *Config) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("config", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.StringVar(&c.product, "product", "", "product id")
	fset.StringVar(&c.instrument, "instrument", "", "instrument id")
	return "config", fset, cli.CmdFunc(c.run)
}

func (c *Config) Purpose() string {
	return "Print the defaults and limits of a product on an instrument."
}

func (c *Config) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if c.product == "" || c.instrument == "" {
		return fmt.Errorf("-product and -instrument flags are required")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	cfg, err := client.Market.GetProductConfig(ctx, c.product, c.instrument)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, cfg)
}
