// internal/common/context.go
package common

import "context"

// contextKey namespaces this package's context values so they can't
// collide with keys set by other packages using plain strings.
type contextKey string

// RequestIDKey is the context key for the per-request correlation ID
// threaded through cmd/chunkd's handlers and log lines.
const RequestIDKey = contextKey("request-id")

// GetRequestID extracts the request ID from ctx, returning "" if none was
// set (e.g. a call path outside the HTTP middleware, such as a test).
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
