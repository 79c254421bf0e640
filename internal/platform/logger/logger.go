// Package logger provides structured logging for the application using
// log/slog.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/victorward/dailytarot/internal/config"
)

// contextKey is the private type for context values set by this package.
type contextKey struct{}

var loggerKey contextKey

// Setup builds the application's JSON logger at the configured level,
// installs it as the slog default, and returns it. An unknown level falls
// back to info with a warning rather than failing startup.
func Setup(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using info",
			slog.String("configured_level", cfg.LogLevel))
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// WithLogger returns a context carrying the given logger, typically one
// already scoped with request attributes such as a trace ID.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContextOrDefault returns the logger carried by ctx, or fallback when
// none is set (or fallback is needed because ctx is nil).
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
