package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the private type for context values set by the API layer.
type ContextKey string

// TraceIDKey carries the per-request trace ID used to correlate logs and
// error responses.
const TraceIDKey ContextKey = "traceID"

// SetTraceID attaches a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the trace ID from the context, or "" when unset.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
