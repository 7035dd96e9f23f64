// Copyright (c) 2025 BVK Chaitanya

package transport

import (
	"fmt"
	"log/slog"
)

// restyLogger sends the resty client's internal messages to slog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
