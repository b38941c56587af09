package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/volunteer-hub/internal/model"
)

func TestApplicationRepoCreate(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepo(db)
	ctx := context.Background()

	org := seedUser(t, db, "Org", "org@example.com", model.RoleOrganizer)
	vol := seedUser(t, db, "Vol", "vol@example.com", model.RoleVolunteer)
	i := seedInitiative(t, db, org.ID, "Cleanup", time.Now().UTC(), true)

	a, err := repo.Create(ctx, vol.ID, i.ID)
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, model.StatusPending, a.Status)

	// One application per (volunteer, initiative) pair.
	_, err = repo.Create(ctx, vol.ID, i.ID)
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	// Withdrawing frees the slot for a fresh application.
	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.Create(ctx, vol.ID, i.ID)
	assert.NoError(t, err)
}

func TestApplicationRepoUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepo(db)
	ctx := context.Background()

	org := seedUser(t, db, "Org", "org@example.com", model.RoleOrganizer)
	vol := seedUser(t, db, "Vol", "vol@example.com", model.RoleVolunteer)
	i := seedInitiative(t, db, org.ID, "Cleanup", time.Now().UTC(), true)

	a, err := repo.Create(ctx, vol.ID, i.ID)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, a.ID, model.StatusApproved))
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, model.StatusDenied), ErrNotFound)
}

func TestApplicationRepoListByVolunteer(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepo(db)
	ctx := context.Background()

	org := seedUser(t, db, "Org", "org@example.com", model.RoleOrganizer)
	vol := seedUser(t, db, "Vol", "vol@example.com", model.RoleVolunteer)
	date := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	i := seedInitiative(t, db, org.ID, "Cleanup", date, true)

	_, err := repo.Create(ctx, vol.ID, i.ID)
	require.NoError(t, err)

	items, err := repo.ListByVolunteer(ctx, vol.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cleanup", items[0].InitiativeTitle)
	assert.Equal(t, "community", items[0].InitiativeCategory)
	assert.Equal(t, model.StatusPending, items[0].Status)

	other, err := repo.ListByVolunteer(ctx, org.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestApplicationRepoOrganizerViews(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepo(db)
	ctx := context.Background()

	org := seedUser(t, db, "Org", "org@example.com", model.RoleOrganizer)
	other := seedUser(t, db, "Other", "other@example.com", model.RoleOrganizer)
	vol1 := seedUser(t, db, "Vol1", "vol1@example.com", model.RoleVolunteer)
	vol2 := seedUser(t, db, "Vol2", "vol2@example.com", model.RoleVolunteer)

	base := time.Now().UTC()
	i1 := seedInitiative(t, db, org.ID, "Cleanup", base.Add(24*time.Hour), true)
	i2 := seedInitiative(t, db, org.ID, "Food drive", base.Add(48*time.Hour), true)
	foreign := seedInitiative(t, db, other.ID, "Book fair", base.Add(72*time.Hour), true)

	_, err := repo.Create(ctx, vol1.ID, i1.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, vol2.ID, i1.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, vol1.ID, i2.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, vol1.ID, foreign.ID)
	require.NoError(t, err)

	// Per initiative: both applicants with their details joined in.
	byInitiative, err := repo.ListByInitiative(ctx, i1.ID)
	require.NoError(t, err)
	require.Len(t, byInitiative, 2)
	names := []string{byInitiative[0].VolunteerName, byInitiative[1].VolunteerName}
	assert.ElementsMatch(t, []string{"Vol1", "Vol2"}, names)
	assert.Equal(t, "Cleanup", byInitiative[0].InitiativeTitle)

	// Per organizer: the union across owned initiatives, nothing foreign.
	byOrganizer, err := repo.ListByOrganizer(ctx, org.ID)
	require.NoError(t, err)
	assert.Len(t, byOrganizer, 3)
	for _, a := range byOrganizer {
		assert.NotEqual(t, foreign.ID, a.InitiativeID)
	}
}
