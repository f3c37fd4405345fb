package session

import (
	"strings"
	"time"
)

// Role identifies the operator role encoded in a session credential.
type Role string

const (
	// RoleAdmin grants access to the administrative dashboard.
	RoleAdmin Role = "admin"
	// RoleReceptionist grants access to the receptionist task view.
	RoleReceptionist Role = "receptionist"
	// RoleUser is a general account with no front-desk privileges.
	RoleUser Role = "user"
	// RoleCleaner identifies housekeeping staff.
	RoleCleaner Role = "cleaner"
)

// ParseRole normalizes a role string issued by the backend. Producers vary the
// casing and occasionally use long-form names, so comparison is lenient.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "administrator":
		return RoleAdmin, true
	case "receptionist":
		return RoleReceptionist, true
	case "user", "general user":
		return RoleUser, true
	case "cleaner":
		return RoleCleaner, true
	}
	return "", false
}

// Claims holds the fields decoded from a session credential payload. A fresh
// value is constructed on every decode; claims are never cached or mutated.
type Claims struct {
	// Subject is the account identifier of the operator.
	Subject string `json:"id"`
	// RawRole is the role exactly as issued; use NormalizedRole for comparison.
	RawRole string `json:"role"`
	// DisplayName is the human-readable operator name.
	DisplayName string `json:"name"`
	// IssuedAt is seconds since epoch; zero when the issuer omitted it.
	IssuedAt float64 `json:"iat"`
	// ExpiresAt is seconds since epoch, fractional precision permitted. A
	// payload without an expiry decodes to zero and is treated as already
	// expired.
	ExpiresAt float64 `json:"exp"`
}

// NormalizedRole maps the issued role onto the closed role set.
func (c Claims) NormalizedRole() (Role, bool) {
	return ParseRole(c.RawRole)
}

// ExpiresAtTime converts the expiry to a wall-clock instant. The zero time is
// returned when no expiry was issued.
func (c Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt <= 0 {
		return time.Time{}
	}
	sec := int64(c.ExpiresAt)
	nsec := int64((c.ExpiresAt - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}
