// Copyright (c) 2025 BVK Chaitanya

package admin

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bvk/tradeapi/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Reset struct {
	cmdutil.ClientFlags

	yes bool
}

func (c *Reset) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := flag.NewFlagSet("reset", flag.ContinueOnError)
	c.ClientFlags.SetFlags(fset)
	fset.BoolVar(&c.yes, "yes", false, "confirm the account reset")
	return "reset", fset, cli.CmdFunc(c.run)
}

func (c *Reset) Purpose() string {
	return "Reset the account balance and close all contracts."
}

func (c *Reset) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("this command takes no arguments")
	}
	if !c.yes {
		return fmt.Errorf("account reset must be confirmed with -yes flag")
	}
	client, closer, err := c.ClientFlags.NewClient()
	if err != nil {
		return err
	}
	defer closer()

	r, err := client.Admin.Reset(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(os.Stdout, r)
}
