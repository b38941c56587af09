package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

// Repository tests run the production SQL against an in-memory sqlite
// database. The queries are written driver-agnostic on purpose so the
// exact statements MySQL executes are the ones exercised here.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	profile_image TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE refresh_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	token_hash TEXT NOT NULL,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE initiatives (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	date DATETIME NOT NULL,
	category TEXT NOT NULL,
	image_url TEXT,
	address TEXT,
	latitude REAL,
	longitude REAL,
	approved BOOLEAN NOT NULL,
	organizer_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE applications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT NOT NULL,
	volunteer_id INTEGER NOT NULL,
	initiative_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	user_id INTEGER NOT NULL,
	initiative_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
`

// openTestDB opens a fresh in-memory database per test. A single
// connection keeps every statement on the same memory instance.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, name, email string, role model.Role) model.User {
	t.Helper()
	u, err := NewUserRepo(db).Create(context.Background(), name, email, "pw12345", role, 4)
	require.NoError(t, err)
	return u
}

func seedInitiative(t *testing.T, db *sql.DB, organizerID uint64, title string, date time.Time, approved bool) model.Initiative {
	t.Helper()
	repo := NewInitiativeRepo(db)
	i := model.Initiative{
		Title:       title,
		Description: "desc for " + title,
		Date:        date,
		Category:    "community",
		OrganizerID: organizerID,
	}
	require.NoError(t, repo.Create(context.Background(), &i))
	if approved {
		require.NoError(t, repo.Approve(context.Background(), i.ID))
		i.Approved = true
	}
	return i
}
