package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/logging"
	"github.com/example/frontdesk/internal/session"
)

// SessionManager is the decoder surface the session endpoints require.
// *session.Decoder satisfies it.
type SessionManager interface {
	StoreToken(ctx context.Context, token string) error
	ClearSession(ctx context.Context) error
	CurrentClaims(ctx context.Context) (session.Claims, bool)
	ValidClaims(ctx context.Context) (session.Claims, bool)
}

// SessionHandler exposes the stored-session lifecycle over HTTP.
type SessionHandler struct {
	sessions  SessionManager
	responder responder
	logger    *slog.Logger
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions SessionManager, logger *slog.Logger) *SessionHandler {
	base := logging.Default(logger)
	return &SessionHandler{sessions: sessions, responder: newResponder(base), logger: base}
}

type storeTokenRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Subject     string `json:"subject"`
	Role        string `json:"role,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	Valid       bool   `json:"valid"`
}

// Get reports the current stored session's claims.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := h.sessions.CurrentClaims(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errNoSession)
		return
	}

	resp := sessionResponse{Subject: claims.Subject, DisplayName: claims.DisplayName}
	if role, known := claims.NormalizedRole(); known {
		resp.Role = string(role)
	}
	if expires := claims.ExpiresAtTime(); !expires.IsZero() {
		resp.ExpiresAt = expires.UTC().Format(time.RFC3339)
	}
	_, resp.Valid = h.sessions.ValidClaims(ctx)

	h.responder.writeJSON(ctx, w, http.StatusOK, resp)
}

// Put validates and stores a new session token.
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req storeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := logging.Component(ctx, h.logger, "SessionHandler", "Put")
	if err := h.sessions.StoreToken(ctx, req.Token); err != nil {
		switch {
		case errors.Is(err, session.ErrMalformedToken):
			h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: "TOKEN_MALFORMED",
				Message:   "token is not a decodable credential",
			})
		case errors.Is(err, session.ErrTokenExpired):
			h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: "TOKEN_EXPIRED",
				Message:   "token has already expired",
			})
		default:
			logger.ErrorContext(ctx, "failed to store session token", "error", err)
			h.responder.writeError(ctx, w, http.StatusInternalServerError, nil)
		}
		return
	}

	logger.InfoContext(ctx, "session token stored")
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// Delete clears the stored session. Deleting an absent session succeeds.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.ClearSession(ctx); err != nil {
		logging.Component(ctx, h.logger, "SessionHandler", "Delete").
			ErrorContext(ctx, "failed to clear session", "error", err)
		h.responder.writeError(ctx, w, http.StatusInternalServerError, nil)
		return
	}
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

// DashboardHandler serves the derived view models over the latest snapshot.
type DashboardHandler struct {
	snapshots       *SnapshotHolder
	checkoutWindow  time.Duration
	checkoutLimit   int
	roomInspections int
	now             func() time.Time
	responder       responder
	logger          *slog.Logger
}

// DashboardConfig carries the aggregation parameters injected by wiring.
type DashboardConfig struct {
	Snapshots      *SnapshotHolder
	CheckoutWindow time.Duration
	CheckoutLimit  int
	// RoomInspections is the operator-supplied estimate surfaced in the
	// task view; the backend exposes no inspection data.
	RoomInspections int
	Now             func() time.Time
	Logger          *slog.Logger
}

// NewDashboardHandler constructs a DashboardHandler, applying the aggregation
// defaults for unset parameters.
func NewDashboardHandler(cfg DashboardConfig) *DashboardHandler {
	if cfg.CheckoutWindow <= 0 {
		cfg.CheckoutWindow = dashboard.DefaultCheckoutWindow
	}
	if cfg.CheckoutLimit <= 0 {
		cfg.CheckoutLimit = dashboard.DefaultCheckoutLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	base := logging.Default(cfg.Logger)
	return &DashboardHandler{
		snapshots:       cfg.Snapshots,
		checkoutWindow:  cfg.CheckoutWindow,
		checkoutLimit:   cfg.CheckoutLimit,
		roomInspections: cfg.RoomInspections,
		now:             cfg.Now,
		responder:       newResponder(base),
		logger:          base,
	}
}

type checkoutsResponse struct {
	AsOf      string                       `json:"as_of"`
	Checkouts []dashboard.UpcomingCheckout `json:"checkouts"`
}

// Summary serves the administrative daily summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		h.responder.writeError(ctx, w, http.StatusServiceUnavailable, errMissingSnapshot)
		return
	}

	summary := dashboard.ComputeDailySummary(snapshot.Bookings, snapshot.Rooms, h.now())
	h.responder.writeJSON(ctx, w, http.StatusOK, summary)
}

// Checkouts serves the imminent-departures list.
func (h *DashboardHandler) Checkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		h.responder.writeError(ctx, w, http.StatusServiceUnavailable, errMissingSnapshot)
		return
	}

	now := h.now()
	resp := checkoutsResponse{
		AsOf:      now.UTC().Format(time.RFC3339),
		Checkouts: dashboard.UpcomingCheckouts(snapshot.Bookings, now, h.checkoutWindow, h.checkoutLimit),
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, resp)
}

// Tasks serves the receptionist task counts.
func (h *DashboardHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, ok := h.snapshots.Latest()
	if !ok {
		h.responder.writeError(ctx, w, http.StatusServiceUnavailable, errMissingSnapshot)
		return
	}

	counts := dashboard.ComputeTaskCounts(snapshot.Bookings, h.now(), h.roomInspections)
	h.responder.writeJSON(ctx, w, http.StatusOK, counts)
}
