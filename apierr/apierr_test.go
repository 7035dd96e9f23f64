// Copyright (c) 2025 BVK Chaitanya

package apierr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorChain(t *testing.T) {
	base := &Error{
		Code:     CodeNetwork,
		Message:  "network error: context canceled",
		Endpoint: "/accounting/balance",
		Cause:    context.Canceled,
	}
	wrapped := fmt.Errorf("could not get balance: %w", base)

	if !IsCode(wrapped, CodeNetwork) {
		t.Fatalf("want code %q in the chain", CodeNetwork)
	}
	if IsCode(wrapped, CodeHTTP) {
		t.Fatalf("unexpected code %q in the chain", CodeHTTP)
	}
	if !errors.Is(wrapped, context.Canceled) {
		t.Fatalf("want context.Canceled in the chain")
	}
	if v := StatusCode(wrapped); v != 0 {
		t.Fatalf("want status 0, got %d", v)
	}
}

func TestErrorString(t *testing.T) {
	e := &Error{Code: "insufficient_balance", Message: "Not enough funds", StatusCode: 400, Endpoint: "/trading/contracts/buy"}
	want := "/trading/contracts/buy: insufficient_balance: Not enough funds (status 400)"
	if got := e.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	if StatusCode(errors.New("plain")) != 0 {
		t.Fatalf("plain errors must report zero status")
	}
}
