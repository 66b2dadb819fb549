package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspectAccessToken(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub":  "user-42",
		"role": "admin",
		"exp":  exp.Unix(),
	})

	claims, err := InspectAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestInspectAccessToken_NoExpiryNeverExpires(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "user-7", "role": "seller"})

	claims, err := InspectAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, claims.Role)
	assert.False(t, claims.Expired(time.Now().Add(100*time.Hour)))
}

func TestInspectAccessToken_Malformed(t *testing.T) {
	_, err := InspectAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
