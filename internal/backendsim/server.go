// Package backendsim is a stand-in for the property-management backend. It
// issues unsigned session tokens on login and serves room and booking
// snapshots in the backend's wire format, so the dashboard can run end to end
// without the real system.
package backendsim

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/logging"
)

// DefaultTokenTTL is how long issued session tokens stay valid.
const DefaultTokenTTL = 8 * time.Hour

// Server serves the simulated backend API.
type Server struct {
	data     *Dataset
	tokenTTL time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewServer constructs a Server over a seeded dataset.
func NewServer(data *Dataset, logger *slog.Logger) *Server {
	return &Server{
		data:     data,
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
		logger:   logging.Default(logger),
	}
}

// Handler returns the simulator's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/rooms", s.requireToken(s.handleRooms))
	mux.HandleFunc("/bookings", s.requireToken(s.handleBookings))
	return mux
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "request body is not valid JSON", http.StatusBadRequest)
		return
	}

	logger := logging.Component(r.Context(), s.logger, "Server", "handleLogin")

	account, found := s.data.findAccount(strings.TrimSpace(req.Username))
	if !found {
		logger.Info("login rejected", "username", req.Username)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := verifyPassword(account.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, errWrongPassword) {
			logger.Error("password verification failed", "error", err)
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := mintToken(account, s.now(), s.tokenTTL)
	if err != nil {
		logger.Error("token mint failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info("login succeeded", "username", account.Username, "role", account.Role)
	writeJSON(w, loginResponse{Token: token})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.data.Rooms)
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.data.Bookings)
}

// requireToken gates data endpoints on a decodable bearer token. The real
// backend verifies signatures; the simulator only checks that the credential
// is well formed, which is all the dashboard's decoder needs exercised.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !tokenDecodes(token) {
			http.Error(w, "missing or malformed bearer token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
