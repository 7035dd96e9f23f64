// Copyright (c) 2023 BVK Chaitanya

package main

import (
	"context"
	"log"
	"os"

	"github.com/bvk/tradeapi/subcmds/admin"
	"github.com/bvk/tradeapi/subcmds/balance"
	"github.com/bvk/tradeapi/subcmds/market"
	"github.com/bvk/tradeapi/subcmds/trade"
	"github.com/visvasity/cli"
)

func main() {
	if err := cli.Run(context.Background(), commands(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func commands() []cli.Command {
	balanceCmds := []cli.Command{
		new(balance.Get),
		new(balance.Stream),
	}

	marketCmds := []cli.Command{
		new(market.Products),
		new(market.Instruments),
		new(market.Config),
		new(market.Candles),
		new(market.Ticks),
		new(market.StreamCandles),
		new(market.StreamTicks),
	}

	tradeCmds := []cli.Command{
		new(trade.Proposal),
		new(trade.StreamProposal),
		new(trade.Buy),
		new(trade.Sell),
		new(trade.Cancel),
		new(trade.Open),
		new(trade.Closed),
		new(trade.Get),
		new(trade.StreamContracts),
	}

	adminCmds := []cli.Command{
		new(admin.Reset),
	}

	return []cli.Command{
		cli.NewGroup("balance", "View the account balance", balanceCmds...),
		cli.NewGroup("market", "View products, instruments and prices", marketCmds...),
		cli.NewGroup("trade", "Price, buy and sell contracts", tradeCmds...),
		cli.NewGroup("admin", "Administer the account", adminCmds...),
	}
}
