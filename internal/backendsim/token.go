package backendsim

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// tokenHeader mimics the shape real issuers emit. The simulator never signs
// tokens; the dashboard trusts the backend boundary and only decodes.
type tokenHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

type tokenPayload struct {
	Subject     string  `json:"id"`
	Role        string  `json:"role"`
	DisplayName string  `json:"name"`
	IssuedAt    float64 `json:"iat"`
	ExpiresAt   float64 `json:"exp"`
}

// mintToken builds an unsigned three-segment credential for a staff account.
func mintToken(account StaffAccount, issuedAt time.Time, ttl time.Duration) (string, error) {
	header, err := json.Marshal(tokenHeader{Algorithm: "none", Type: "JWT"})
	if err != nil {
		return "", fmt.Errorf("encode token header: %w", err)
	}

	payload, err := json.Marshal(tokenPayload{
		Subject:     account.ID,
		Role:        account.Role,
		DisplayName: account.DisplayName,
		IssuedAt:    float64(issuedAt.Unix()),
		ExpiresAt:   float64(issuedAt.Add(ttl).Unix()),
	})
	if err != nil {
		return "", fmt.Errorf("encode token payload: %w", err)
	}

	segments := []string{
		base64.RawURLEncoding.EncodeToString(header),
		base64.RawURLEncoding.EncodeToString(payload),
		"unsigned",
	}
	return strings.Join(segments, "."), nil
}

// tokenDecodes reports whether a presented bearer token carries a readable
// payload segment. The simulator gates its data endpoints on this alone.
func tokenDecodes(token string) bool {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return false
	}
	var payload tokenPayload
	return json.Unmarshal(raw, &payload) == nil
}
