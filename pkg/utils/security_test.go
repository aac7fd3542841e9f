package utils

import (
	"testing"

	"vidverse/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWT(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{
		AccessSecret:      "access-secret",
		AccessExpireMins:  15,
		RefreshSecret:     "refresh-secret",
		RefreshExpireDays: 1,
	}})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, VerifyPassword("s3cret!", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setupJWT(t)

	tok, err := GenerateAccessToken(42)
	require.NoError(t, err)

	claims, err := ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	setupJWT(t)

	refresh, err := GenerateRefreshToken(1)
	require.NoError(t, err)
	_, err = ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := GenerateAccessToken(1)
	require.NoError(t, err)
	_, err = ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	config.Set(&config.Config{JWT: config.JWTConfig{AccessSecret: "a", AccessExpireMins: -1}})

	tok, err := GenerateAccessToken(1)
	require.NoError(t, err)
	_, err = ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
