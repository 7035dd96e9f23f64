// Copyright (c) 2025 BVK Chaitanya

// Package sse turns a server-sent-events response body into a lazy,
// non-restartable sequence of typed values.
//
// A Stream reads from the connection only when the consumer asks for the next
// value. Closing the stream, canceling its context or breaking out of a range
// loop over All closes the connection. None of those report an error; the
// sequence simply ends.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"

	"github.com/bvk/tradeapi/apierr"
)

// DecodeFunc converts one JSON payload into a typed value.
type DecodeFunc[T any] func(json.RawMessage) (T, error)

// Stream is a single subscription. Recv must not be called concurrently, but
// Close can be called from any goroutine.
type Stream[T any] struct {
	ctx      context.Context
	endpoint string

	body   io.ReadCloser
	dec    *Decoder
	decode DecodeFunc[T]

	stopf func() bool

	mu     sync.Mutex
	closed bool
}

// NewStream takes ownership of the body. The stream is closed automatically
// when the context is done.
func NewStream[T any](ctx context.Context, endpoint string, body io.ReadCloser, decode DecodeFunc[T]) *Stream[T] {
	dec := NewDecoder(body)
	dec.Endpoint = endpoint
	s := &Stream[T]{
		ctx:      ctx,
		endpoint: endpoint,
		body:     body,
		dec:      dec,
		decode:   decode,
	}
	s.stopf = context.AfterFunc(ctx, func() { s.Close() })
	return s
}

// Endpoint returns the path this stream is subscribed to.
func (s *Stream[T]) Endpoint() string {
	return s.endpoint
}

func (s *Stream[T]) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the connection. It is safe to call Close more than once.
func (s *Stream[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.stopf()
	s.body.Close()
	return nil
}

// Recv returns the next value in wire order.
//
// Returns io.EOF when the server closes the connection or the stream was
// closed or canceled. A read failure on an open connection is returned as a
// stream_error and closes the stream. A payload that is valid JSON but does
// not match the model fails only that call; the stream stays open.
func (s *Stream[T]) Recv() (T, error) {
	var zero T
	if s.isClosed() {
		return zero, io.EOF
	}
	if s.ctx.Err() != nil {
		s.Close()
		return zero, io.EOF
	}

	payload, err := s.dec.Next()
	if err != nil {
		closed := s.isClosed()
		s.Close()
		if closed || errors.Is(err, io.EOF) || s.ctx.Err() != nil {
			return zero, io.EOF
		}
		return zero, &apierr.Error{
			Code:     apierr.CodeStream,
			Message:  fmt.Sprintf("event stream read failed: %v", err),
			Endpoint: s.endpoint,
			Cause:    err,
		}
	}

	v, err := s.decode(payload)
	if err != nil {
		return zero, fmt.Errorf("could not decode event from %s: %w", s.endpoint, err)
	}
	return v, nil
}

// All returns the remaining values as an iterator. Errors are yielded along
// with a zero value; iteration stops after a stream_error. The stream is
// closed when the iteration ends for any reason.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()

		for {
			v, err := s.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(v, err) {
				return
			}
			if err != nil && s.isClosed() {
				return
			}
		}
	}
}
