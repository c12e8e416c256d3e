package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, 15)
	require.NoError(t, err)

	id, err := ParseAccessToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok, err := NewRefreshToken(testSecret, 7, 7)
	require.NoError(t, err)

	id, err := ParseRefreshToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestTokensUniqueWithinSameSecond(t *testing.T) {
	a, err := NewAccessToken(testSecret, 1, 15)
	require.NoError(t, err)
	b, err := NewAccessToken(testSecret, 1, 15)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, 15)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessSecretCannotForgeRefresh(t *testing.T) {
	tok, err := NewAccessToken("access-secret", 42, 15)
	require.NoError(t, err)

	_, err = ParseRefreshToken("refresh-secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(-time.Minute).Unix(),
		"iat": time.Now().Add(-time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ParseAccessToken(testSecret, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone,
		jwt.MapClaims{"sub": 42}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
