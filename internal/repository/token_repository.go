package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/linkedweld/linkedweld-api/internal/model"
)

// TokenRepo persists refresh tokens. Tokens are stored verbatim and looked
// up by exact string match; rotation and logout delete rows outright rather
// than flagging them.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Insert stores a freshly issued refresh token.
func (r *TokenRepo) Insert(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, exp)
	return err
}

// Find returns the stored record for an exact token string, or
// ErrTokenNotFound. Cryptographic validity is the caller's concern; a token
// that verifies but has no row here was already rotated or revoked.
func (r *TokenRepo) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RefreshToken{}, ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	return t, nil
}

// Delete removes a token row and reports whether one was removed. Rotation
// depends on the return value: the database deletes a given row exactly
// once, so of two concurrent refreshes presenting the same token only one
// observes true and proceeds to mint a replacement.
func (r *TokenRepo) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token=?", token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
