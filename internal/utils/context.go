package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey carries the id of the API request being served.
var TraceIDCtxKey = contextKey("traceID")

// WithTraceID stores traceID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace id stored by WithTraceID.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}
