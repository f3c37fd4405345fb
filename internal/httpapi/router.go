package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/frontdesk/internal/session"
)

// RouterConfig wires the handlers, session validator, and outer middleware
// into a single HTTP handler.
type RouterConfig struct {
	Sessions   *SessionHandler
	Dashboard  *DashboardHandler
	Validator  SessionValidator
	Logger     *slog.Logger
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the view API routes. The session endpoints are
// unauthenticated (a token must be storable before any session is valid); the
// dashboard endpoints are role-gated per view.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Sessions != nil {
		mux.HandleFunc("/api/v1/session", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Sessions.Get(w, r)
			case http.MethodPut:
				cfg.Sessions.Put(w, r)
			case http.MethodDelete:
				cfg.Sessions.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Dashboard != nil && cfg.Validator != nil {
		adminOnly := RequireRole(cfg.Validator, cfg.Logger, session.RoleAdmin)
		frontDesk := RequireRole(cfg.Validator, cfg.Logger, session.RoleAdmin, session.RoleReceptionist)
		receptionistOnly := RequireRole(cfg.Validator, cfg.Logger, session.RoleReceptionist)

		mux.Handle("/api/v1/dashboard/summary", adminOnly(getOnly(cfg.Dashboard.Summary)))
		mux.Handle("/api/v1/dashboard/checkouts", frontDesk(getOnly(cfg.Dashboard.Checkouts)))
		mux.Handle("/api/v1/dashboard/tasks", receptionistOnly(getOnly(cfg.Dashboard.Tasks)))
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}

func getOnly(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		handler(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
