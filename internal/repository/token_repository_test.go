package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

func TestTokenRepoStoreAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepo(db)
	ctx := context.Background()
	u := seedUser(t, db, "Dana", "dana@example.com", model.RoleVolunteer)

	exp := time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.Store(ctx, u.ID, "hash-1", exp))

	got, err := repo.Find(ctx, "hash-1", u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "hash-1", got.TokenHash)
}

func TestTokenRepoFindRequiresMatchingUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepo(db)
	ctx := context.Background()
	u := seedUser(t, db, "Dana", "dana@example.com", model.RoleVolunteer)

	require.NoError(t, repo.Store(ctx, u.ID, "hash-1", time.Now().UTC().Add(time.Hour)))

	// A stored hash presented with the wrong user id is treated as absent.
	_, err := repo.Find(ctx, "hash-1", u.ID+1)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepoFindDeletesExpired(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepo(db)
	ctx := context.Background()
	u := seedUser(t, db, "Dana", "dana@example.com", model.RoleVolunteer)

	require.NoError(t, repo.Store(ctx, u.ID, "stale", time.Now().UTC().Add(-time.Minute)))

	_, err := repo.Find(ctx, "stale", u.ID)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// The expired row was removed on sight, so a second lookup reports
	// not-found rather than expired.
	_, err = repo.Find(ctx, "stale", u.ID)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepoRotateConsumesOldToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepo(db)
	ctx := context.Background()
	u := seedUser(t, db, "Dana", "dana@example.com", model.RoleVolunteer)
	exp := time.Now().UTC().Add(time.Hour)

	require.NoError(t, repo.Store(ctx, u.ID, "old", exp))
	require.NoError(t, repo.Rotate(ctx, u.ID, "old", "new", exp))

	_, err := repo.Find(ctx, "old", u.ID)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	_, err = repo.Find(ctx, "new", u.ID)
	assert.NoError(t, err)

	// Rotating the already-consumed token fails and must not write the
	// replacement it was asked to store.
	err = repo.Rotate(ctx, u.ID, "old", "newer", exp)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	_, err = repo.Find(ctx, "newer", u.ID)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepoDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepo(db)
	ctx := context.Background()
	u := seedUser(t, db, "Dana", "dana@example.com", model.RoleVolunteer)

	require.NoError(t, repo.Store(ctx, u.ID, "hash-1", time.Now().UTC().Add(time.Hour)))
	require.NoError(t, repo.Delete(ctx, "hash-1"))

	assert.ErrorIs(t, repo.Delete(ctx, "hash-1"), ErrTokenNotFound)
}
