package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

// TokenRepo persists refresh tokens (single 'token_hash' column).  Tokens
// are single-use: rows are deleted on rotation, logout and lazy expiry
// detection; there is no background sweep.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a refresh token hash row.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at) VALUES (?,?,?,?)",
		userID, tokenHash, exp, time.Now().UTC())
	return err
}

// Find returns the stored token bound to both the hash and the user the
// token's payload claims to belong to.  A token whose signature decodes to
// one user but whose row belongs to another is treated as absent.  Expired
// rows are deleted on sight and reported as ErrTokenExpired.
func (r *TokenRepo) Find(ctx context.Context, tokenHash string, userID uint64) (model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, expires_at, created_at FROM refresh_tokens WHERE token_hash=? AND user_id=? LIMIT 1",
		tokenHash, userID).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return model.RefreshToken{}, ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshToken{}, err
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		_, _ = r.DB.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE id=?", t.ID)
		return model.RefreshToken{}, ErrTokenExpired
	}
	return t, nil
}

// Rotate atomically consumes the old token and stores its replacement.
// Running both statements in one transaction prevents a window where the
// old token is gone but the new one was never written, and equally one
// where both are valid at once.  ErrTokenNotFound is returned when the old
// token was already consumed, which is how replay of a used refresh token
// surfaces.
func (r *TokenRepo) Rotate(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token_hash=? AND user_id=?", oldHash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at) VALUES (?,?,?,?)",
		userID, newHash, exp, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a stored token by hash.  ErrTokenNotFound is returned when
// no row matched, which handlers surface as a client error rather than a
// server fault.
func (r *TokenRepo) Delete(ctx context.Context, tokenHash string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE token_hash=?", tokenHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}
