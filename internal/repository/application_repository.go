package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

// ApplicationRepo persists initiative applications.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

// VolunteerApplication is an application joined with a summary of its
// initiative, as listed on the volunteer dashboard.
type VolunteerApplication struct {
	model.Application
	InitiativeTitle    string
	InitiativeDate     time.Time
	InitiativeCategory string
}

// OrganizerApplication is an application joined with the applying
// volunteer and the initiative title, as listed on the organizer and
// per-initiative views.
type OrganizerApplication struct {
	model.Application
	VolunteerName   string
	VolunteerEmail  string
	InitiativeTitle string
}

const applicationColumns = "id,status,volunteer_id,initiative_id,created_at,updated_at"

// Create inserts a Pending application after checking for an existing row
// on the same (volunteer, initiative) pair.  Uniqueness is not backed by a
// storage constraint; the read-then-write race is accepted.
func (r *ApplicationRepo) Create(ctx context.Context, volunteerID, initiativeID uint64) (model.Application, error) {
	var exists uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM applications WHERE volunteer_id=? AND initiative_id=? LIMIT 1",
		volunteerID, initiativeID).Scan(&exists)
	if err == nil {
		return model.Application{}, ErrDuplicateApplication
	}
	if err != sql.ErrNoRows {
		return model.Application{}, err
	}

	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO applications (status, volunteer_id, initiative_id, created_at, updated_at) VALUES (?,?,?,?,?)",
		model.StatusPending, volunteerID, initiativeID, now, now)
	if err != nil {
		return model.Application{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Application{}, err
	}
	return model.Application{
		ID: uint64(id), Status: model.StatusPending,
		VolunteerID: volunteerID, InitiativeID: initiativeID,
		CreatedAt: now, UpdatedAt: now,
	}, nil
}

// GetByID fetches one application.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (model.Application, error) {
	var a model.Application
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE id=? LIMIT 1", id).
		Scan(&a.ID, &a.Status, &a.VolunteerID, &a.InitiativeID, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Application{}, ErrNotFound
	}
	return a, err
}

// UpdateStatus persists a status transition.  Target validation and the
// terminal-state rule live in the handler via the model helpers; this
// method only writes.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, status model.ApplicationStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE applications SET status=?, updated_at=? WHERE id=?",
		status, time.Now().UTC(), id)
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

// Delete removes an application.
func (r *ApplicationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM applications WHERE id=?", id)
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

// ListByVolunteer returns a volunteer's applications with initiative
// summaries attached.
func (r *ApplicationRepo) ListByVolunteer(ctx context.Context, volunteerID uint64) ([]VolunteerApplication, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT a.id, a.status, a.volunteer_id, a.initiative_id, a.created_at, a.updated_at,
		       i.title, i.date, i.category
		FROM applications a
		JOIN initiatives i ON i.id = a.initiative_id
		WHERE a.volunteer_id=?
		ORDER BY a.created_at`, volunteerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VolunteerApplication
	for rows.Next() {
		var v VolunteerApplication
		if err := rows.Scan(&v.ID, &v.Status, &v.VolunteerID, &v.InitiativeID, &v.CreatedAt, &v.UpdatedAt,
			&v.InitiativeTitle, &v.InitiativeDate, &v.InitiativeCategory); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByInitiative returns all applications on one initiative together
// with the applying volunteers.
func (r *ApplicationRepo) ListByInitiative(ctx context.Context, initiativeID uint64) ([]OrganizerApplication, error) {
	return r.listWithVolunteers(ctx, "WHERE a.initiative_id=?", initiativeID)
}

// ListByOrganizer unions applications across every initiative owned by
// the organizer.
func (r *ApplicationRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]OrganizerApplication, error) {
	return r.listWithVolunteers(ctx, "WHERE i.organizer_id=?", organizerID)
}

func (r *ApplicationRepo) listWithVolunteers(ctx context.Context, where string, arg uint64) ([]OrganizerApplication, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT a.id, a.status, a.volunteer_id, a.initiative_id, a.created_at, a.updated_at,
		       u.name, u.email, i.title
		FROM applications a
		JOIN users u ON u.id = a.volunteer_id
		JOIN initiatives i ON i.id = a.initiative_id
		`+where+`
		ORDER BY a.created_at`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OrganizerApplication
	for rows.Next() {
		var o OrganizerApplication
		if err := rows.Scan(&o.ID, &o.Status, &o.VolunteerID, &o.InitiativeID, &o.CreatedAt, &o.UpdatedAt,
			&o.VolunteerName, &o.VolunteerEmail, &o.InitiativeTitle); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
