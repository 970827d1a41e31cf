package repository

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by the signed session token handed to
// the browser. The backend bearer token itself never leaves the gateway.
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *SessionClaims) HasRole(role string) bool {
	return c.Role == role
}

// TokenService mints and validates signed session tokens.
type TokenService interface {
	GenerateToken(ctx context.Context, sessionID, userID, role string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error)
	// ExtractClaims parses a token without validating it, so expired tokens
	// can still be mapped back to their stored session for lazy deletion.
	ExtractClaims(tokenString string) (*SessionClaims, error)
}
