// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. The keys are set by transport middleware and read
// by services and the audit pipeline, which must not depend on net/http.
package requestcontext

import "context"

type requestIDKey struct{}

// WithRequestID attaches the request correlation id to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request correlation id, or "" when the context did
// not pass through the request-id middleware.
func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok {
		return ""
	}
	return id
}
