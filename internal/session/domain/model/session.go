package model

import (
	"errors"
	"time"
)

// Session domain errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session is the gateway-persisted record of an authenticated user. It holds
// the backend bearer token so the browser never sees it; the client only
// carries a signed session token referencing this record.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry. A session is valid
// iff ExpiresAt is in the future.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
