package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = contextKey{}

// FromContext returns the logger attached to ctx, falling back to the
// package default when none is set.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger attaches a logger to the context for downstream lookup
// with FromContext.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}
