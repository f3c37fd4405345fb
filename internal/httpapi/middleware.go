package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/example/frontdesk/internal/logging"
	"github.com/example/frontdesk/internal/session"
)

// SessionValidator resolves the stored session into validated claims.
// session.Decoder satisfies it.
type SessionValidator interface {
	ValidClaims(ctx context.Context) (session.Claims, bool)
}

// RequireRole gates a handler behind a valid stored session. When roles are
// supplied, the session's normalized role must additionally be one of them.
func RequireRole(sessions SessionValidator, logger *slog.Logger, roles ...session.Role) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, ok := sessions.ValidClaims(ctx)
			if !ok {
				responder.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
					ErrorCode: "SESSION_INVALID",
					Message:   "session is missing, expired, or malformed; sign in again",
				})
				return
			}

			if len(roles) > 0 {
				role, known := claims.NormalizedRole()
				if !known || !roleAllowed(role, roles) {
					responder.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
						ErrorCode: "ROLE_FORBIDDEN",
						Message:   "this view is not available for your role",
					})
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(ctx, claims)))
		})
	}
}

func roleAllowed(role session.Role, allowed []session.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

// RequestLogger attaches a per-request logger to the context and records
// request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	base = logging.Default(base)
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
