// Copyright (c) 2025 BVK Chaitanya

// Package transport implements the HTTP layer of the trading API: JSON
// requests against a fixed base url and server-sent-event subscriptions.
//
// Every failure is returned as an *apierr.Error. Nothing is retried.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bvk/tradeapi/apierr"
	"github.com/bvk/tradeapi/envelope"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries a unique id for every request.
const RequestIDHeader = "X-Request-ID"

var emptyObject = json.RawMessage(`{}`)

type Client struct {
	opts Options

	rc *resty.Client
}

// New returns a client for the API at opts.BaseURL.
func New(opts *Options) (*Client, error) {
	if opts == nil {
		opts = new(Options)
	}
	opts.setDefaults()
	if err := opts.Check(); err != nil {
		return nil, err
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(opts.BaseURL)
	rc.SetHeader("User-Agent", opts.UserAgent)
	rc.SetLogger(restyLogger{})

	c := &Client{
		opts: *opts,
		rc:   rc,
	}
	return c, nil
}

// Close releases idle pooled connections. Requests in flight may fail with a
// network_error.
func (c *Client) Close() error {
	c.rc.GetClient().CloseIdleConnections()
	return nil
}

// BaseURL returns the url prefixed to all endpoints.
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

func (c *Client) newRequest(ctx context.Context, accept string) (*resty.Request, string) {
	id := uuid.NewString()
	req := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", accept).
		SetHeader(RequestIDHeader, id)
	return req, id
}

// Get sends a GET request with the query parameters and returns the response
// body as JSON. An empty body is returned as an empty object.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, params, nil)
}

// Post sends the body as JSON and returns the response body as JSON. A nil
// body is sent as an empty object.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	data := []byte(emptyObject)
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body for %s: %w", endpoint, err)
		}
		data = js
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, data)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params map[string]string, body []byte) (json.RawMessage, error) {
	if c.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.RequestTimeout)
		defer cancel()
	}

	req, id := c.newRequest(ctx, "application/json")
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("could not perform http request", "method", method, "endpoint", endpoint, "request-id", id, "err", err)
		}
		return nil, &apierr.Error{
			Code:     apierr.CodeNetwork,
			Message:  err.Error(),
			Endpoint: endpoint,
			Cause:    err,
		}
	}
	slog.Debug("http request completed", "method", method, "endpoint", endpoint, "request-id", id, "status", resp.StatusCode(), "duration", time.Since(start))

	return decodeResponse(endpoint, resp.StatusCode(), resp.Status(), resp.Body())
}

func decodeResponse(endpoint string, status int, statusLine string, body []byte) (json.RawMessage, error) {
	if status < 200 || status > 299 {
		return nil, statusError(endpoint, status, statusLine, body)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return emptyObject, nil
	}
	if !json.Valid(body) {
		return nil, &apierr.Error{
			Code:       apierr.CodeParse,
			Message:    "response body is not valid json",
			StatusCode: status,
			Endpoint:   endpoint,
		}
	}
	return json.RawMessage(bytes.Clone(body)), nil
}

type errorBody struct {
	Errors []json.RawMessage `json:"errors"`
}

// errorEntry extracts the code and message of a server error entry. Fields
// that are missing or not strings take the default values.
func errorEntry(entry json.RawMessage) (code, message string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err == nil {
		if err := json.Unmarshal(fields["code"], &code); err != nil {
			code = ""
		}
		if err := json.Unmarshal(fields["message"], &message); err != nil {
			message = ""
		}
	}
	if code == "" {
		code = apierr.CodeUnknown
	}
	if message == "" {
		message = apierr.DefaultMessage
	}
	return code, message
}

// statusMessage formats the http_error message. The reason phrase from the
// status line is used for codes net/http doesn't know.
func statusMessage(status int, statusLine string) string {
	reason := http.StatusText(status)
	if reason == "" {
		reason = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(statusLine), strconv.Itoa(status)))
	}
	if reason == "" {
		reason = "status code " + strconv.Itoa(status)
	}
	return fmt.Sprintf("HTTP %d: %s", status, reason)
}

func statusError(endpoint string, status int, statusLine string, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		code, message := errorEntry(eb.Errors[0])
		return &apierr.Error{
			Code:       code,
			Message:    message,
			StatusCode: status,
			Endpoint:   endpoint,
			Detail:     json.RawMessage(bytes.Clone(bytes.TrimSpace(body))),
		}
	}
	return &apierr.Error{
		Code:       apierr.CodeHTTP,
		Message:    statusMessage(status, statusLine),
		StatusCode: status,
		Endpoint:   endpoint,
	}
}

// GetJSON sends a GET request and decodes the enveloped response into T.
func GetJSON[T any](ctx context.Context, c *Client, endpoint string, params map[string]string) (*T, error) {
	raw, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return envelope.Decode[T](raw)
}

// PostJSON sends a POST request and decodes the enveloped response into T.
func PostJSON[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	raw, err := c.Post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	return envelope.Decode[T](raw)
}
