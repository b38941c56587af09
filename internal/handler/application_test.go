package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationResp struct {
	ID           uint64 `json:"id"`
	Status       string `json:"status"`
	InitiativeID uint64 `json:"initiativeId"`
}

func (a *testAPI) apply(t *testing.T, token string, initiativeID uint64) applicationResp {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/applications", token, map[string]any{"initiativeId": initiativeID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp applicationResp
	decode(t, rec, &resp)
	return resp
}

func TestApplicationLifecycle(t *testing.T) {
	api := newTestAPI(t)
	org := api.register(t, "Org", "org@example.com", "organizer")
	other := api.register(t, "Other", "other@example.com", "organizer")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")
	admin := api.register(t, "Admin", "admin@example.com", "admin")

	created := api.createInitiative(t, org.AccessToken, "Cleanup")
	api.approve(t, admin.AccessToken, created.ID)

	app := api.apply(t, vol.AccessToken, created.ID)
	assert.Equal(t, "Pending", app.Status)

	// One application per initiative.
	rec := api.do(t, http.MethodPost, "/api/applications", vol.AccessToken,
		map[string]any{"initiativeId": created.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already applied")

	// The volunteer sees it with the initiative summary attached.
	rec = api.do(t, http.MethodGet, "/api/applications/user", vol.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID         uint64 `json:"id"`
		Status     string `json:"status"`
		Initiative struct {
			Title string `json:"title"`
		} `json:"initiative"`
	}
	decode(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Cleanup", mine[0].Initiative.Title)

	// The owning organizer sees the applicant; an unrelated organizer is
	// forbidden.
	perInitiative := fmt.Sprintf("/api/applications/initiative/%d", created.ID)
	rec = api.do(t, http.MethodGet, perInitiative, org.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var incoming []struct {
		Volunteer struct {
			Email string `json:"email"`
		} `json:"volunteer"`
	}
	decode(t, rec, &incoming)
	require.Len(t, incoming, 1)
	assert.Equal(t, "vol@example.com", incoming[0].Volunteer.Email)

	rec = api.do(t, http.MethodGet, perInitiative, other.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	appPath := fmt.Sprintf("/api/applications/%d", app.ID)

	// An unrelated organizer cannot decide either.
	rec = api.do(t, http.MethodPut, appPath, other.AccessToken, map[string]any{"status": "Approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Pending is not a decision, arbitrary strings even less so.
	for _, bad := range []string{"Pending", "approved", "Cancelled"} {
		rec = api.do(t, http.MethodPut, appPath, org.AccessToken, map[string]any{"status": bad})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "status %q", bad)
	}

	rec = api.do(t, http.MethodPut, appPath, org.AccessToken, map[string]any{"status": "Approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Approved and Denied are terminal.
	rec = api.do(t, http.MethodPut, appPath, org.AccessToken, map[string]any{"status": "Denied"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already decided")

	// The volunteer cannot withdraw a decided application, an admin can
	// still delete it.
	rec = api.do(t, http.MethodDelete, appPath, vol.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = api.do(t, http.MethodDelete, appPath, admin.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplyToUnapprovedInitiativeIsHidden(t *testing.T) {
	api := newTestAPI(t)
	org := api.register(t, "Org", "org@example.com", "organizer")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")

	created := api.createInitiative(t, org.AccessToken, "Draft")

	rec := api.do(t, http.MethodPost, "/api/applications", vol.AccessToken,
		map[string]any{"initiativeId": created.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code, "unapproved initiatives must not leak through apply")

	rec = api.do(t, http.MethodPost, "/api/applications", vol.AccessToken,
		map[string]any{"initiativeId": 9999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWithdrawPendingApplication(t *testing.T) {
	api := newTestAPI(t)
	org := api.register(t, "Org", "org@example.com", "organizer")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")
	admin := api.register(t, "Admin", "admin@example.com", "admin")

	created := api.createInitiative(t, org.AccessToken, "Cleanup")
	api.approve(t, admin.AccessToken, created.ID)
	app := api.apply(t, vol.AccessToken, created.ID)

	rec := api.do(t, http.MethodDelete, fmt.Sprintf("/api/applications/%d", app.ID), vol.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/applications/user", vol.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []applicationResp
	decode(t, rec, &mine)
	assert.Empty(t, mine)

	// Withdrawing frees the slot.
	api.apply(t, vol.AccessToken, created.ID)
}

func TestOrganizerDashboardListing(t *testing.T) {
	api := newTestAPI(t)
	org := api.register(t, "Org", "org@example.com", "organizer")
	other := api.register(t, "Other", "other@example.com", "organizer")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")
	admin := api.register(t, "Admin", "admin@example.com", "admin")

	mine := api.createInitiative(t, org.AccessToken, "Mine")
	foreign := api.createInitiative(t, other.AccessToken, "Foreign")
	api.approve(t, admin.AccessToken, mine.ID)
	api.approve(t, admin.AccessToken, foreign.ID)

	api.apply(t, vol.AccessToken, mine.ID)
	api.apply(t, vol.AccessToken, foreign.ID)

	rec := api.do(t, http.MethodGet, "/api/applications/organizer", org.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []struct {
		Initiative struct {
			ID uint64 `json:"id"`
		} `json:"initiative"`
	}
	decode(t, rec, &list)
	require.Len(t, list, 1, "only applications on own initiatives")
	assert.Equal(t, mine.ID, list[0].Initiative.ID)

	// Volunteers have no organizer dashboard.
	rec = api.do(t, http.MethodGet, "/api/applications/organizer", vol.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
