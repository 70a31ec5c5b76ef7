package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret",
		"bandencentrale", "bandencentrale", time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	token, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	rt, err := a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.True(t, rt.Valid)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(7, "staff")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	a := newTestAuthenticator()
	other := NewJWTAuthenticator("other-secret", "other-refresh",
		"bandencentrale", "bandencentrale", time.Hour, 24*time.Hour)

	access, _, err := other.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	a := newTestAuthenticator()
	other := NewJWTAuthenticator("access-secret", "refresh-secret",
		"bandencentrale", "someone-else", time.Hour, 24*time.Hour)

	access, _, err := other.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	expired := NewJWTAuthenticator("access-secret", "refresh-secret",
		"bandencentrale", "bandencentrale", -time.Minute, -time.Minute)

	access, refresh, err := expired.GenerateTokens(1, "admin")
	require.NoError(t, err)

	_, err = expired.ValidateAccessToken(access)
	assert.Error(t, err)

	_, err = expired.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}
