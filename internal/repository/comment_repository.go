package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

// CommentRepo persists initiative comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// CommentWithAuthor is a comment joined with its author's public fields.
type CommentWithAuthor struct {
	model.Comment
	AuthorName  string
	AuthorEmail string
}

// Create inserts a comment.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	c.CreatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (content, user_id, initiative_id, created_at) VALUES (?,?,?,?)",
		c.Content, c.UserID, c.InitiativeID, c.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches one comment.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, content, user_id, initiative_id, created_at FROM comments WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Content, &c.UserID, &c.InitiativeID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Comment{}, ErrNotFound
	}
	return c, err
}

// ListByInitiative returns an initiative's comments oldest-first with
// author details attached.
func (r *CommentRepo) ListByInitiative(ctx context.Context, initiativeID uint64) ([]CommentWithAuthor, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.content, c.user_id, c.initiative_id, c.created_at, u.name, u.email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.initiative_id=?
		ORDER BY c.created_at`, initiativeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.InitiativeID, &c.CreatedAt, &c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
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
