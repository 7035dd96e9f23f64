// Copyright (c) 2025 BVK Chaitanya

package main

import (
	"context"
	"testing"

	"github.com/visvasity/cli"
)

var commandPaths = [][]string{
	{"balance", "get"},
	{"balance", "stream"},
	{"market", "products"},
	{"market", "instruments"},
	{"market", "config"},
	{"market", "candles"},
	{"market", "ticks"},
	{"market", "stream-candles"},
	{"market", "stream-ticks"},
	{"trade", "proposal"},
	{"trade", "stream-proposal"},
	{"trade", "buy"},
	{"trade", "sell"},
	{"trade", "cancel"},
	{"trade", "open"},
	{"trade", "closed"},
	{"trade", "get"},
	{"trade", "stream-contracts"},
	{"admin", "reset"},
}

func TestCommandHelp(t *testing.T) {
	ctx := context.Background()
	for _, group := range []string{"balance", "market", "trade", "admin"} {
		if err := cli.Run(ctx, commands(), []string{group, "-help"}); err != nil {
			t.Fatalf("%s: %v", group, err)
		}
	}
	for _, path := range commandPaths {
		args := append(append([]string{}, path...), "-help")
		if err := cli.Run(ctx, commands(), args); err != nil {
			t.Fatalf("%v: %v", path, err)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	if err := cli.Run(context.Background(), commands(), []string{"balance", "withdraw"}); err == nil {
		t.Fatalf("want error for undefined command")
	}
}
