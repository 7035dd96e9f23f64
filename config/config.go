// Copyright (c) 2025 BVK Chaitanya

// Package config loads client settings from a YAML file, env files and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bvk/tradeapi/transport"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix is the prefix of the environment variables read by
// FromEnv.
const DefaultEnvPrefix = "TRADEAPI_"

type Config struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent"`

	LogDir string `yaml:"log_dir"`
	Debug  bool   `yaml:"debug"`
}

// Load reads a YAML config file. Unknown keys are rejected. An empty file is
// an empty config.
func Load(fpath string) (*Config, error) {
	fp, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	cfg := new(Config)
	dec := yaml.NewDecoder(fp)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse config file %q: %w", fpath, err)
	}
	return cfg, nil
}

// FromEnv overrides fields with the non-empty environment variables
// prefix+BASE_URL, prefix+REQUEST_TIMEOUT, prefix+USER_AGENT, prefix+LOG_DIR
// and prefix+DEBUG.
func (c *Config) FromEnv(prefix string) error {
	if v := os.Getenv(prefix + "BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(prefix + "REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("could not parse %sREQUEST_TIMEOUT value %q: %w", prefix, v, err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv(prefix + "USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv(prefix + "LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv(prefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("could not parse %sDEBUG value %q: %w", prefix, v, err)
		}
		c.Debug = b
	}
	return nil
}

// TransportOptions returns the transport options for the config.
func (c *Config) TransportOptions() *transport.Options {
	return &transport.Options{
		BaseURL:        c.BaseURL,
		RequestTimeout: c.RequestTimeout,
		UserAgent:      c.UserAgent,
	}
}
