package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey int

const requestIDKey ctxKey = iota

// NewRequestID mints a per-request correlation ID.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores the request ID on the context. Only the ID travels;
// loggers are derived at the point of use.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the context's request ID, or "" when absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// For returns the default logger annotated with the context's request ID.
func For(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return slog.Default().With(slog.String("request_id", id))
	}
	return slog.Default()
}
