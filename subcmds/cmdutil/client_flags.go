// Copyright (c) 2023 BVK Chaitanya

package cmdutil

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bvk/tradeapi/client"
	"github.com/bvk/tradeapi/config"
	"github.com/visvasity/sglog"
)

// ClientFlags holds the flags common to all commands that talk to the API.
type ClientFlags struct {
	baseURL        string
	configPath     string
	envFile        string
	requestTimeout time.Duration
	logDir         string
	debug          bool
}

func (cf *ClientFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&cf.baseURL, "base-url", "", "base url for the api endpoints (default TRADEAPI_BASE_URL or "+defaultBaseURL+")")
	fset.StringVar(&cf.configPath, "config", "", "path to a yaml config file")
	fset.StringVar(&cf.envFile, "env-file", "", "env file name searched from current directory upwards, or a path")
	fset.DurationVar(&cf.requestTimeout, "request-timeout", 0, "timeout for non-streaming requests (default 30s)")
	fset.StringVar(&cf.logDir, "log-dir", "", "directory for log files instead of stderr")
	fset.BoolVar(&cf.debug, "debug", false, "enable debug logging")
}

const defaultBaseURL = "http://localhost:8000"

// Config resolves the settings from flags, environment, env file and the
// config file, in that order of precedence.
func (cf *ClientFlags) Config() (*config.Config, error) {
	cfg := new(config.Config)
	if cf.configPath != "" {
		v, err := config.Load(cf.configPath)
		if err != nil {
			return nil, err
		}
		cfg = v
	}

	if cf.envFile != "" {
		if strings.ContainsRune(cf.envFile, os.PathSeparator) {
			if err := config.LoadEnvFile(cf.envFile); err != nil {
				return nil, err
			}
		} else {
			if err := config.UpdateEnv(cf.envFile, config.UpwardsFrom(".")); err != nil {
				return nil, fmt.Errorf("could not load env file %q: %w", cf.envFile, err)
			}
		}
	}
	if err := cfg.FromEnv(config.DefaultEnvPrefix); err != nil {
		return nil, err
	}

	if cf.baseURL != "" {
		cfg.BaseURL = cf.baseURL
	}
	if cf.requestTimeout != 0 {
		cfg.RequestTimeout = cf.requestTimeout
	}
	if cf.logDir != "" {
		cfg.LogDir = cf.logDir
	}
	if cf.debug {
		cfg.Debug = true
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg, nil
}

// SetupLogging installs the default slog logger for the config and returns
// a function to flush and release the log backend.
func SetupLogging(cfg *config.Config) func() {
	if cfg.LogDir != "" {
		backend := sglog.NewBackend(&sglog.Options{
			LogDirs: []string{cfg.LogDir},
		})
		if cfg.Debug {
			backend.SetLevel(slog.LevelDebug)
		}
		slog.SetDefault(slog.New(backend.Handler()))
		return backend.Close
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return func() {}
}

// NewClient creates an api client for the flags. Callers must call the
// returned function when done with the client.
func (cf *ClientFlags) NewClient() (*client.Client, func(), error) {
	cfg, err := cf.Config()
	if err != nil {
		return nil, nil, err
	}
	closeLogs := SetupLogging(cfg)

	c, err := client.New(cfg.TransportOptions())
	if err != nil {
		closeLogs()
		return nil, nil, fmt.Errorf("could not create api client: %w", err)
	}
	closer := func() {
		c.Close()
		closeLogs()
	}
	return c, closer, nil
}
