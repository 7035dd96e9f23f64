// Copyright (c) 2025 BVK Chaitanya

package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/bvk/tradeapi/apitest"
	"github.com/visvasity/cli"
)

func runReset(args ...string) error {
	return cli.Run(context.Background(), []cli.Command{new(Reset)}, append([]string{"reset"}, args...))
}

func TestResetNeedsConfirmation(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleData(http.MethodPost, "/admin/reset", map[string]string{"balance": "10000.00", "currency": "USD"})

	if err := runReset("-base-url", srv.URL()); err == nil {
		t.Fatalf("want error without -yes flag")
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("unconfirmed reset must not reach the server, got %d requests", n)
	}

	if err := runReset("-base-url", srv.URL(), "-yes"); err != nil {
		t.Fatal(err)
	}
	if _, ok := srv.LastRequest("/admin/reset"); !ok {
		t.Fatalf("want reset request")
	}
}

func TestResetArgs(t *testing.T) {
	if err := runReset("-yes", "now"); err == nil {
		t.Fatalf("want error for extra arguments")
	}
}
