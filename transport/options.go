// Copyright (c) 2025 BVK Chaitanya

package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "tradeapi-go"
)

type Options struct {
	// BaseURL is prefixed to every endpoint path. Must be an absolute http or
	// https url.
	BaseURL string

	// RequestTimeout bounds every JSON request. Streams are bounded only by
	// their context.
	RequestTimeout time.Duration

	UserAgent string

	// HTTPClient, when non-nil, is used for all requests instead of a new
	// client.
	HTTPClient *http.Client
}

func (v *Options) setDefaults() {
	if v.BaseURL == "" {
		v.BaseURL = DefaultBaseURL
	}
	v.BaseURL = strings.TrimRight(v.BaseURL, "/")
	if v.RequestTimeout == 0 {
		v.RequestTimeout = DefaultRequestTimeout
	}
	if v.UserAgent == "" {
		v.UserAgent = DefaultUserAgent
	}
}

// Check validates the options.
func (v *Options) Check() error {
	u, err := url.Parse(v.BaseURL)
	if err != nil {
		return fmt.Errorf("could not parse base url %q: %w", v.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https scheme", v.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", v.BaseURL)
	}
	if v.RequestTimeout < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}
	return nil
}
