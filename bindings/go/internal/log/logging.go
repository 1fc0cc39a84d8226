// Package log contains the logging helpers shared by the bindings.
package log

import (
	"context"
	"log/slog"
	"time"
)

// RealmKey is the attribute key that names the part of the bindings a record originates from.
const RealmKey = "realm"

// Base returns logger scoped to the given realm. A nil logger falls back to slog.Default
// at the time of the call, so loggers configured later through slog.SetDefault are honored.
func Base(logger *slog.Logger, realm string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String(RealmKey, realm))
}

// Operation is a helper function to log operations with timing and error handling.
// It logs the start of the operation and returns a function that logs its outcome.
func Operation(ctx context.Context, logger *slog.Logger, operation string, fields ...slog.Attr) func(error) {
	start := time.Now()
	attrs := make([]any, 0, len(fields)+1)
	attrs = append(attrs, slog.String("operation", operation))
	for _, field := range fields {
		attrs = append(attrs, field)
	}
	logger = logger.With(attrs...)
	logger.Log(ctx, slog.LevelDebug, "operation starting")
	return func(err error) {
		if err != nil {
			logger.Log(ctx, slog.LevelError, "operation failed", slog.Duration("duration", time.Since(start)), slog.String("error", err.Error()))
		} else {
			logger.Log(ctx, slog.LevelDebug, "operation completed", slog.Duration("duration", time.Since(start)))
		}
	}
}

// ContentLogAttr creates a log attribute describing materialized content.
func ContentLogAttr(mediaType, digest string, size int) slog.Attr {
	args := []any{
		slog.String("mediaType", mediaType),
		slog.Int("size", size),
	}
	if digest != "" {
		args = append(args, slog.String("digest", digest))
	}
	return slog.Group("content", args...)
}
