// Package utils provides token issuance, password hashing and verification
// code helpers shared by the auth handlers.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed token, or expiry. Callers must not be able to
// tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// Access and refresh tokens are both HS256 JWTs carrying the user ID as the
// subject, but they are signed with separate secrets. A leaked access secret
// therefore cannot forge long-lived refresh tokens, and vice versa. Each
// token also carries a random jti so that two tokens minted for the same
// user within the same second still differ; refresh rotation relies on the
// stored token string being unique.

// NewAccessToken signs a short-lived access JWT for a user.
func NewAccessToken(secret string, userID uint64, ttlMin int) (string, error) {
	return signToken(secret, userID, time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken signs a long-lived refresh JWT for a user.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (string, error) {
	return signToken(secret, userID, time.Duration(ttlDays)*24*time.Hour)
}

// ParseAccessToken validates an access token and returns the user ID.
func ParseAccessToken(secret, token string) (uint64, error) {
	return parseToken(secret, token)
}

// ParseRefreshToken validates a refresh token and returns the user ID. A
// successful parse says nothing about whether the token is still stored;
// rotation and logout delete stored tokens, and only stored tokens count.
func ParseRefreshToken(secret, token string) (uint64, error) {
	return parseToken(secret, token)
}

func signToken(secret string, userID uint64, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	jti, err := randomHex(8)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"jti": jti,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, token string) (uint64, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(sub), nil
}

// randomHex returns a hex string built from n bytes of secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
