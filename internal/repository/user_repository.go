package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/volunteer-hub/internal/auth"
	"github.com/iliyamo/volunteer-hub/internal/model"
)

// UserRepo persists users.  All SQL is kept driver-agnostic so the same
// queries run on MySQL in production and on sqlite in tests.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,role,profile_image,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Create hashes the password and inserts a new user.  The email is
// normalized to lower case and checked for uniqueness with an explicit
// read; the duplicate race this leaves open is accepted.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, role model.Role, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var exists uint64
	err := r.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&exists)
	if err == nil {
		return model.User{}, ErrEmailExists
	}
	if err != sql.ErrNoRows {
		return model.User{}, err
	}

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES (?,?,?,?,?,?)",
		name, email, hash, role, now, now)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID: uint64(id), Name: name, Email: email, PasswordHash: hash,
		Role: role, CreatedAt: now, UpdatedAt: now,
	}, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ListAll returns every user, admin dashboard use only.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile updates name, email and/or profile image.  Nil parameters
// leave the column untouched.  A changed email is re-validated for
// uniqueness against other accounts.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, email, profileImage *string) (model.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		u.Name = strings.TrimSpace(*name)
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		next := strings.ToLower(strings.TrimSpace(*email))
		if next != u.Email {
			var other uint64
			err := r.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE email=? AND id<>? LIMIT 1", next, id).Scan(&other)
			if err == nil {
				return model.User{}, ErrEmailExists
			}
			if err != sql.ErrNoRows {
				return model.User{}, err
			}
			u.Email = next
		}
	}
	if profileImage != nil {
		u.ProfileImage = profileImage
	}
	u.UpdatedAt = time.Now().UTC()
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, profile_image=?, updated_at=? WHERE id=?",
		u.Name, u.Email, u.ProfileImage, u.UpdatedAt, id)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// UpdatePassword stores a new bcrypt hash.  Verification of the current
// password happens in the handler; this method only persists.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=? WHERE id=?",
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user and everything they own: refresh tokens, comments,
// applications, owned initiatives and the applications and comments on
// those initiatives.  Everything runs in one transaction so a failed
// cascade never leaves orphans behind.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	steps := []string{
		"DELETE FROM refresh_tokens WHERE user_id=?",
		"DELETE FROM comments WHERE user_id=?",
		"DELETE FROM applications WHERE volunteer_id=?",
		"DELETE FROM applications WHERE initiative_id IN (SELECT id FROM initiatives WHERE organizer_id=?)",
		"DELETE FROM comments WHERE initiative_id IN (SELECT id FROM initiatives WHERE organizer_id=?)",
		"DELETE FROM initiatives WHERE organizer_id=?",
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
