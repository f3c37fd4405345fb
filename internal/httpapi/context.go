package httpapi

import (
	"context"

	"github.com/example/frontdesk/internal/session"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ContextWithClaims returns a derived context containing the validated
// session claims.
func ContextWithClaims(ctx context.Context, claims session.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the validated session claims if available.
func ClaimsFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(session.Claims)
	return claims, ok
}
