package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
)

// CallerValidator validates a bearer token and returns the settlement-layer
// address it binds.
type CallerValidator interface {
	Validate(tokenString string) (domain.Address, error)
}

type contextKeyCaller struct{}

// ContextKeyCaller is exported for tests that need context.WithValue
// directly.
var ContextKeyCaller = contextKeyCaller{}

// GetCaller retrieves the authenticated caller address from the context.
func GetCaller(ctx context.Context) domain.Address {
	caller, ok := ctx.Value(ContextKeyCaller).(domain.Address)
	if !ok {
		return ""
	}
	return caller
}

// WithCaller injects a caller address; test helper.
func WithCaller(ctx context.Context, caller domain.Address) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, caller)
}

// RequireCaller rejects requests without a valid bearer token and places
// the bound address in the request context. All Unauthorized checks beyond
// identity (admin, quorum) stay in the services.
func RequireCaller(validator CallerValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			caller, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "caller token rejected", "error", err)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
