// Copyright (c) 2025 BVK Chaitanya

// Package apierr defines the error type returned by the transport and the
// event-stream layers.
//
// Every failure carries a machine readable code, a human message, the HTTP
// status (zero when no response was received), the endpoint path that was
// being requested and, for structured server errors, the raw error body.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes produced locally. Structured server errors carry the code
// reported by the server instead.
const (
	CodeNetwork = "network_error"
	CodeHTTP    = "http_error"
	CodeParse   = "parse_error"
	CodeStream  = "stream_error"
	CodeUnknown = "unknown_error"
)

// DefaultMessage is used when a structured server error has no message.
const DefaultMessage = "Unknown error occurred"

// Error is created at the point of failure and is never modified afterwards.
type Error struct {
	Code    string
	Message string

	// StatusCode is zero when the request failed before receiving a response.
	StatusCode int

	// Endpoint is the path relative to the client's base URL.
	Endpoint string

	// Detail holds the raw JSON error body for structured server errors.
	Detail json.RawMessage

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Endpoint != "" {
		sb.WriteString(e.Endpoint)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Code)
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError extracts an *Error from the error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode returns true if the error chain has an *Error with the given code.
func IsCode(err error, code string) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

// StatusCode returns the HTTP status code of the error chain or zero.
func StatusCode(err error) int {
	if e, ok := AsError(err); ok {
		return e.StatusCode
	}
	return 0
}
