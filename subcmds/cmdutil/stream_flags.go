// Copyright (c) 2025 BVK Chaitanya

package cmdutil

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/bvk/tradeapi/apierr"
	"github.com/bvk/tradeapi/sse"
	"golang.org/x/term"
)

// StreamFlags limit how long a streaming command runs.
type StreamFlags struct {
	count   int
	timeout time.Duration
}

func (sf *StreamFlags) SetFlags(fset *flag.FlagSet) {
	fset.IntVar(&sf.count, "count", 0, "stop after printing this many events (0 means no limit)")
	fset.DurationVar(&sf.timeout, "timeout", 0, "stop streaming after this duration (0 means no limit)")
}

// Context returns a context that is canceled after the timeout, if any.
func (sf *StreamFlags) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if sf.timeout > 0 {
		return context.WithTimeout(ctx, sf.timeout)
	}
	return context.WithCancel(ctx)
}

// PrintJSON writes v as indented JSON on a terminal and as a single line
// otherwise.
func PrintJSON(w io.Writer, v any) error {
	var js []byte
	var err error
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		js, err = json.MarshalIndent(v, "", "  ")
	} else {
		js, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	js = append(js, '\n')
	_, err = w.Write(js)
	return err
}

// PrintStream prints events until the stream ends, the count is reached or
// the context is done. Events that could not be decoded are logged and
// skipped.
func PrintStream[T any](w io.Writer, s *sse.Stream[T], sf *StreamFlags) error {
	defer s.Close()

	for v, err := range sse.Take(s, sf.count) {
		if err != nil {
			if apierr.IsCode(err, apierr.CodeStream) {
				return err
			}
			slog.Warn("skipping event", "endpoint", s.Endpoint(), "err", err)
			continue
		}
		if err := PrintJSON(w, v); err != nil {
			return err
		}
	}
	return nil
}
