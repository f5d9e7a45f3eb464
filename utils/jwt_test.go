package utils

import (
	"testing"
	"time"

	"dreamhi/config"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestGenerateAndExtractToken(t *testing.T) {
	withSecret(t, "test-secret")

	token, err := GenerateToken("u1", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	exp, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestExtractIDFromToken_Rejects(t *testing.T) {
	withSecret(t, "test-secret")

	expired, err := GenerateToken("u1", -time.Minute)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   "u1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject: "u1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"no subject": noSubject,
		"no expiry":  noExpiry,
		"foreign":    foreign,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractIDFromToken(token)
			assert.Error(t, err)
		})
	}
}

func TestTokenExpiry_RequiresExpClaim(t *testing.T) {
	withSecret(t, "test-secret")

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject: "u1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = TokenExpiry(noExpiry)
	assert.Error(t, err)
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	withSecret(t, "")
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken("u1", time.Hour)
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
