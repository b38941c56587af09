package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

// InitiativeRepo persists initiatives.  Visibility filtering for list
// responses is pushed into SQL so unapproved rows never leave the
// database for callers who may not see them.
type InitiativeRepo struct{ DB *sql.DB }

func NewInitiativeRepo(db *sql.DB) *InitiativeRepo { return &InitiativeRepo{DB: db} }

const initiativeColumns = "id,title,description,date,category,image_url,address,latitude,longitude,approved,organizer_id,created_at,updated_at"

func scanInitiatives(rows *sql.Rows) ([]model.Initiative, error) {
	defer rows.Close()
	var out []model.Initiative
	for rows.Next() {
		var i model.Initiative
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.Date, &i.Category, &i.ImageURL,
			&i.Address, &i.Latitude, &i.Longitude, &i.Approved, &i.OrganizerID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// Create inserts an initiative.  Approved is always false on insert; only
// the admin approval path can flip it.
func (r *InitiativeRepo) Create(ctx context.Context, i *model.Initiative) error {
	now := time.Now().UTC()
	i.Approved = false
	i.CreatedAt = now
	i.UpdatedAt = now
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO initiatives (title, description, date, category, image_url, address, latitude, longitude, approved, organizer_id, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		i.Title, i.Description, i.Date, i.Category, i.ImageURL, i.Address, i.Latitude, i.Longitude, i.Approved, i.OrganizerID, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = uint64(id)
	return nil
}

// GetByID fetches a single initiative without any visibility check; the
// policy package decides whether the caller may actually see it.
func (r *InitiativeRepo) GetByID(ctx context.Context, id uint64) (model.Initiative, error) {
	var i model.Initiative
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+initiativeColumns+" FROM initiatives WHERE id=? LIMIT 1", id).
		Scan(&i.ID, &i.Title, &i.Description, &i.Date, &i.Category, &i.ImageURL,
			&i.Address, &i.Latitude, &i.Longitude, &i.Approved, &i.OrganizerID, &i.CreatedAt, &i.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Initiative{}, ErrNotFound
	}
	return i, err
}

// ListVisibleFor returns the subset of initiatives the viewer may see:
// everything for admins, approved plus own for organizers, approved only
// for volunteers and anonymous callers (nil viewer).
func (r *InitiativeRepo) ListVisibleFor(ctx context.Context, viewer *model.User) ([]model.Initiative, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch {
	case viewer != nil && viewer.Role == model.RoleAdmin:
		rows, err = r.DB.QueryContext(ctx,
			"SELECT "+initiativeColumns+" FROM initiatives ORDER BY date")
	case viewer != nil && viewer.Role == model.RoleOrganizer:
		rows, err = r.DB.QueryContext(ctx,
			"SELECT "+initiativeColumns+" FROM initiatives WHERE approved=? OR organizer_id=? ORDER BY date",
			true, viewer.ID)
	default:
		rows, err = r.DB.QueryContext(ctx,
			"SELECT "+initiativeColumns+" FROM initiatives WHERE approved=? ORDER BY date", true)
	}
	if err != nil {
		return nil, err
	}
	return scanInitiatives(rows)
}

// ListUnapproved returns all initiatives awaiting moderation.
func (r *InitiativeRepo) ListUnapproved(ctx context.Context) ([]model.Initiative, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+initiativeColumns+" FROM initiatives WHERE approved=? ORDER BY created_at", false)
	if err != nil {
		return nil, err
	}
	return scanInitiatives(rows)
}

// Update persists mutable initiative fields.  The approved flag is not
// written here; Approve is the only path that touches it.
func (r *InitiativeRepo) Update(ctx context.Context, i *model.Initiative) error {
	i.UpdatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"UPDATE initiatives SET title=?, description=?, date=?, category=?, image_url=?, address=?, latitude=?, longitude=?, updated_at=? WHERE id=?",
		i.Title, i.Description, i.Date, i.Category, i.ImageURL, i.Address, i.Latitude, i.Longitude, i.UpdatedAt, i.ID)
	return err
}

// Approve sets approved=true.  Approving an already-approved initiative is
// a no-op, not an error.
func (r *InitiativeRepo) Approve(ctx context.Context, id uint64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE initiatives SET approved=?, updated_at=? WHERE id=?",
		true, time.Now().UTC(), id)
	return err
}

// Delete removes an initiative together with its applications and
// comments in one transaction.
func (r *InitiativeRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM applications WHERE initiative_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE initiative_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM initiatives WHERE id=?", id)
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
