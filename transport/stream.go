// Copyright (c) 2025 BVK Chaitanya

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bvk/tradeapi/apierr"
	"github.com/bvk/tradeapi/envelope"
	"github.com/bvk/tradeapi/sse"
)

// openStream issues the subscription GET and returns the open response body.
// The body is closed when the context is done.
func (c *Client) openStream(ctx context.Context, endpoint string, params map[string]string) (io.ReadCloser, error) {
	req, id := c.newRequest(ctx, "text/event-stream")
	req.SetHeader("Cache-Control", "no-cache").SetDoNotParseResponse(true)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Execute(http.MethodGet, endpoint)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not open event stream", "endpoint", endpoint, "request-id", id, "err", err)
		}
		if resp != nil && resp.RawBody() != nil {
			resp.RawBody().Close()
		}
		return nil, &apierr.Error{
			Code:     apierr.CodeStream,
			Message:  err.Error(),
			Endpoint: endpoint,
			Cause:    err,
		}
	}

	body := resp.RawBody()
	if status := resp.StatusCode(); status != http.StatusOK {
		if body != nil {
			io.Copy(io.Discard, io.LimitReader(body, 64*1024))
			body.Close()
		}
		return nil, &apierr.Error{
			Code:       apierr.CodeHTTP,
			Message:    statusMessage(status, resp.Status()),
			StatusCode: status,
			Endpoint:   endpoint,
		}
	}
	slog.Debug("event stream opened", "endpoint", endpoint, "request-id", id)
	return body, nil
}

// Subscribe opens an event stream whose events are enveloped T values.
func Subscribe[T any](ctx context.Context, c *Client, endpoint string, params map[string]string) (*sse.Stream[*T], error) {
	return SubscribeFunc[*T](ctx, c, endpoint, params, func(raw json.RawMessage) (*T, error) {
		return envelope.Decode[T](raw)
	})
}

// SubscribeFunc opens an event stream and converts every event with the
// decode function.
func SubscribeFunc[T any](ctx context.Context, c *Client, endpoint string, params map[string]string, decode sse.DecodeFunc[T]) (*sse.Stream[T], error) {
	body, err := c.openStream(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return sse.NewStream(ctx, endpoint, body, decode), nil
}
