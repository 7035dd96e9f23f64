// Copyright (c) 2025 BVK Chaitanya

package sse

import (
	"context"
	"iter"
	"log/slog"

	"github.com/bvk/tradeapi/apierr"
	"github.com/visvasity/topic"
)

// Take yields at most n successfully decoded values and closes the stream.
// Decode errors are yielded but do not count towards n. A non-positive n
// means no limit.
func Take[T any](s *Stream[T], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()

		count := 0
		for v, err := range s.All() {
			if n > 0 && count >= n {
				return
			}
			if !yield(v, err) {
				return
			}
			if err == nil {
				count++
				if n > 0 && count >= n {
					return
				}
			}
		}
	}
}

// Publish forwards every decoded value from the stream into the topic, so
// that multiple local receivers can share one connection. Returns when the
// stream ends or the context is canceled; the stream is always closed.
// Undecodable events are logged and skipped. Returns a non-nil error only for
// stream_error failures.
func Publish[T any](ctx context.Context, s *Stream[T], tp *topic.Topic[T]) error {
	defer s.Close()

	stopf := context.AfterFunc(ctx, func() { s.Close() })
	defer stopf()

	for v, err := range s.All() {
		if err != nil {
			if apierr.IsCode(err, apierr.CodeStream) {
				return err
			}
			slog.Warn("skipping event that could not be decoded", "endpoint", s.Endpoint(), "err", err)
			continue
		}
		tp.Send(v)
	}
	return nil
}
