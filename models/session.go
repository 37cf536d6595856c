package models

import "time"

// Session is the locally persisted record of the authenticated user. It is
// independent of the entry cache and reference lists: clearing one never
// touches the others.
type Session struct {
	// User is the sanitized identity returned by the verify-code endpoint.
	User User `json:"user"`

	// Token is the self-contained session credential (a signed JWT) issued
	// at verify time. There is no server-side session storage, so validity
	// is proven entirely by the token itself.
	Token string `json:"token"`

	// ExpiresAt mirrors the token's embedded expiry so the client can drop
	// a stale session without parsing the token again.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
