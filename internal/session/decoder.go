package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/logging"
)

var (
	// ErrMalformedToken is returned when a credential cannot be decoded:
	// wrong segment count, invalid base64url payload, or invalid JSON.
	ErrMalformedToken = errors.New("session: malformed token")
	// ErrTokenExpired is returned by StoreToken for a structurally valid
	// credential whose expiry has already passed.
	ErrTokenExpired = errors.New("session: token expired")
)

// Decoder reads claims out of unsigned bearer credentials and projects them
// through an injected token store.
//
// The decoder performs no signature verification. The backend is authoritative
// for the credentials it issues and the header and signature segments are
// deliberately not interpreted; adding verification here would change the
// trust boundary.
type Decoder struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewDecoder constructs a Decoder. A nil store falls back to an empty
// in-memory store, a nil now falls back to time.Now.
func NewDecoder(store Store, now func() time.Time, logger *slog.Logger) *Decoder {
	if store == nil {
		store = NewMemoryStore()
	}
	if now == nil {
		now = time.Now
	}
	return &Decoder{
		store:  store,
		now:    now,
		logger: logging.Default(logger),
	}
}

// Decode parses a three-segment credential and returns the claims encoded in
// its payload segment. Any malformed input yields ErrMalformedToken; the
// failure is logged as a diagnostic and never panics.
func (d *Decoder) Decode(token string) (Claims, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		d.logger.Debug("session token decode failed", "error", err)
		return Claims{}, err
	}
	return claims, nil
}

func decodeClaims(token string) (Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return Claims{}, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	// The payload may arrive padded or unpadded; RawURLEncoding covers both
	// once trailing padding is stripped.
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: payload is not base64url: %v", ErrMalformedToken, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: payload is not a JSON object: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// IsValid reports whether the credential decodes and its expiry is strictly in
// the future. A token expiring at exactly the current second is invalid; the
// equality case resolves to invalid to avoid a use-after-expiry race.
func (d *Decoder) IsValid(token string) bool {
	claims, err := d.Decode(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt <= 0 {
		return false
	}
	nowSeconds := float64(d.now().UnixNano()) / float64(time.Second)
	return claims.ExpiresAt > nowSeconds
}

// StoreToken validates a credential structurally and temporally, then persists
// it as the active session.
func (d *Decoder) StoreToken(ctx context.Context, token string) error {
	claims, err := d.Decode(token)
	if err != nil {
		return err
	}
	nowSeconds := float64(d.now().UnixNano()) / float64(time.Second)
	if claims.ExpiresAt <= nowSeconds {
		return ErrTokenExpired
	}
	if err := d.store.Set(ctx, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

// ClearSession removes the stored token. Clearing when no token is stored is a
// no-op.
func (d *Decoder) ClearSession(ctx context.Context) error {
	if err := d.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// CurrentClaims reads the stored token and decodes it. The second return is
// false when no token is stored or it cannot be decoded; expiry is not
// consulted.
func (d *Decoder) CurrentClaims(ctx context.Context) (Claims, bool) {
	token, ok := d.currentToken(ctx)
	if !ok {
		return Claims{}, false
	}
	claims, err := d.Decode(token)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// ValidClaims is CurrentClaims restricted to sessions whose expiry is strictly
// in the future.
func (d *Decoder) ValidClaims(ctx context.Context) (Claims, bool) {
	token, ok := d.currentToken(ctx)
	if !ok {
		return Claims{}, false
	}
	if !d.IsValid(token) {
		return Claims{}, false
	}
	claims, err := d.Decode(token)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// Role projects the normalized role out of the stored session. The second
// return is false when the token is absent, undecodable, or carries no
// recognizable role.
func (d *Decoder) Role(ctx context.Context) (Role, bool) {
	claims, ok := d.CurrentClaims(ctx)
	if !ok {
		return "", false
	}
	return claims.NormalizedRole()
}

// SubjectID projects the subject identifier out of the stored session.
func (d *Decoder) SubjectID(ctx context.Context) (string, bool) {
	claims, ok := d.CurrentClaims(ctx)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// DisplayName projects the display name out of the stored session.
func (d *Decoder) DisplayName(ctx context.Context) (string, bool) {
	claims, ok := d.CurrentClaims(ctx)
	if !ok || claims.DisplayName == "" {
		return "", false
	}
	return claims.DisplayName, true
}

func (d *Decoder) currentToken(ctx context.Context) (string, bool) {
	token, err := d.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			logging.Component(ctx, d.logger, "Decoder", "currentToken").
				ErrorContext(ctx, "failed to read stored session token", "error", err)
		}
		return "", false
	}
	return token, true
}
