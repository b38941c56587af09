package repository

import (
	"context"
	"database/sql"
)

// Metrics aggregates platform-wide counts for the admin dashboard.  The
// grouped maps key on the raw column values (role names, application
// statuses, "true"/"false" for the approval flag).
type Metrics struct {
	TotalUsers           int            `json:"total_users"`
	UsersByRole          map[string]int `json:"users_by_role"`
	TotalInitiatives     int            `json:"total_initiatives"`
	InitiativesByStatus  map[string]int `json:"initiatives_by_status"`
	TotalApplications    int            `json:"total_applications"`
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
}

// MetricsRepo runs read-only aggregation queries.  No side effects.
type MetricsRepo struct{ DB *sql.DB }

func NewMetricsRepo(db *sql.DB) *MetricsRepo { return &MetricsRepo{DB: db} }

// Collect gathers all counts in one pass.
func (r *MetricsRepo) Collect(ctx context.Context) (Metrics, error) {
	m := Metrics{
		UsersByRole:          map[string]int{},
		InitiativesByStatus:  map[string]int{},
		ApplicationsByStatus: map[string]int{},
	}

	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&m.TotalUsers); err != nil {
		return Metrics{}, err
	}
	if err := r.groupCount(ctx, "SELECT role, COUNT(*) FROM users GROUP BY role", m.UsersByRole); err != nil {
		return Metrics{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM initiatives").Scan(&m.TotalInitiatives); err != nil {
		return Metrics{}, err
	}
	if err := r.approvalCount(ctx, m.InitiativesByStatus); err != nil {
		return Metrics{}, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&m.TotalApplications); err != nil {
		return Metrics{}, err
	}
	if err := r.groupCount(ctx, "SELECT status, COUNT(*) FROM applications GROUP BY status", m.ApplicationsByStatus); err != nil {
		return Metrics{}, err
	}
	return m, nil
}

func (r *MetricsRepo) groupCount(ctx context.Context, query string, into map[string]int) error {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}

// approvalCount groups initiatives by the boolean approved flag.  The flag
// is scanned as bool so MySQL's TINYINT and sqlite's integer both map
// cleanly, then rendered as "approved"/"unapproved".
func (r *MetricsRepo) approvalCount(ctx context.Context, into map[string]int) error {
	rows, err := r.DB.QueryContext(ctx, "SELECT approved, COUNT(*) FROM initiatives GROUP BY approved")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var approved bool
		var n int
		if err := rows.Scan(&approved, &n); err != nil {
			return err
		}
		if approved {
			into["approved"] = n
		} else {
			into["unapproved"] = n
		}
	}
	return rows.Err()
}
