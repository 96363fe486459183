// Package ctxlog carries a slog.Logger through context.Context and builds
// the loggers the command-line tools hand to it.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. If no logger is
// found, it returns the default global logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", s)
}

// NewLogger creates a logger writing text or json records to w. It does not
// set the global logger.
func NewLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(formatStr) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", formatStr)
	}
	return slog.New(handler), nil
}
