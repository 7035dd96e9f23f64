// Copyright (c) 2025 BVK Chaitanya

package trade

import (
	"context"
	"net/http"
	"testing"

	"github.com/bvk/tradeapi/apitest"
	"github.com/visvasity/cli"
)

func run(args ...string) error {
	cmds := []cli.Command{
		new(Proposal),
		new(Buy),
		new(Sell),
		new(Cancel),
		new(Open),
		new(Get),
	}
	return cli.Run(context.Background(), cmds, args)
}

func TestSellCancel(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleData(http.MethodPost, "/trading/contracts/{id}/sell", map[string]string{"contract_id": "c1", "sold_for": "12.5"})
	srv.HandleData(http.MethodPost, "/trading/contracts/{id}/cancel", map[string]string{"contract_id": "c2", "refund": "10"})

	if err := run("sell", "-base-url", srv.URL(), "c1", "c3"); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"/trading/contracts/c1/sell", "/trading/contracts/c3/sell"} {
		if _, ok := srv.LastRequest(p); !ok {
			t.Fatalf("want request for %s", p)
		}
	}

	if err := run("cancel", "-base-url", srv.URL(), "c2"); err != nil {
		t.Fatal(err)
	}
	if _, ok := srv.LastRequest("/trading/contracts/c2/cancel"); !ok {
		t.Fatalf("want cancel request")
	}

	if err := run("sell", "-base-url", srv.URL()); err == nil {
		t.Fatalf("want error without contract ids")
	}
}

func TestOpenContracts(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodGet, "/trading/contracts/open", http.StatusOK,
		`{"data":[{"contract_id":"c1","product_id":"rise_fall","status":"open"}]}`)

	if err := run("open", "-base-url", srv.URL()); err != nil {
		t.Fatal(err)
	}
}

func TestGetUnknownProduct(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	srv.HandleRaw(http.MethodGet, "/trading/contracts/{id}", http.StatusOK,
		`{"data":{"contract_id":"c9","product_id":"vanillas"}}`)

	if err := run("get", "-base-url", srv.URL(), "c9"); err == nil {
		t.Fatalf("want error for unknown product")
	}
}

func TestProposalFlagErrors(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	if err := run("proposal", "-base-url", srv.URL(), "-instrument", "R_100", "-duration", "5"); err == nil {
		t.Fatalf("want error without -amount flag")
	}
	if err := run("proposal", "-base-url", srv.URL(), "-product", "vanillas", "-instrument", "R_100", "-amount", "10"); err == nil {
		t.Fatalf("want error for unknown product")
	}
	if n := len(srv.Requests()); n != 0 {
		t.Fatalf("invalid proposals must not reach the server, got %d requests", n)
	}
}
