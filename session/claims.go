package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when the access token cannot be decoded.
var ErrMalformedToken = errors.New("malformed access token")

// TokenClaims is the subset of access-token claims the dashboard cares about.
type TokenClaims struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the token expiry has passed. Tokens without an exp
// claim never report as expired; the server remains the authority either way.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// InspectAccessToken decodes claims from a JWT access token without verifying
// its signature. Verification belongs to the backend; this exists only so the
// UI can surface expiry hints and the current role without a round trip.
func InspectAccessToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, errors.Join(ErrMalformedToken, err)
	}

	out := TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = Role(role)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
