package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesAreGated(t *testing.T) {
	api := newTestAPI(t)
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")
	org := api.register(t, "Org", "org@example.com", "organizer")

	for _, path := range []string{"/api/admin/users", "/api/admin/initiatives/unapproved", "/api/admin/metrics"} {
		rec := api.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "anonymous on %s", path)
		rec = api.do(t, http.MethodGet, path, vol.AccessToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "volunteer on %s", path)
		rec = api.do(t, http.MethodGet, path, org.AccessToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "organizer on %s", path)
	}
}

func TestAdminUserManagement(t *testing.T) {
	api := newTestAPI(t)
	admin := api.register(t, "Admin", "admin@example.com", "admin")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")

	rec := api.do(t, http.MethodGet, "/api/admin/users", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decode(t, rec, &users)
	assert.Len(t, users, 2)

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", vol.User.ID), admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vol@example.com")
	assert.NotContains(t, rec.Body.String(), "password", "hashes never leave the server")

	rec = api.do(t, http.MethodGet, "/api/admin/users/9999", admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", vol.User.ID), admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "vol@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "deleted accounts cannot log in")
}

func TestAdminUnapprovedQueue(t *testing.T) {
	api := newTestAPI(t)
	admin := api.register(t, "Admin", "admin@example.com", "admin")
	org := api.register(t, "Org", "org@example.com", "organizer")

	draft := api.createInitiative(t, org.AccessToken, "Draft")
	live := api.createInitiative(t, org.AccessToken, "Live")
	api.approve(t, admin.AccessToken, live.ID)

	rec := api.do(t, http.MethodGet, "/api/admin/initiatives/unapproved", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []initiativeResp
	decode(t, rec, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, draft.ID, pending[0].ID)

	rec = api.do(t, http.MethodPut, "/api/initiatives/9999/approve", admin.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminMetrics(t *testing.T) {
	api := newTestAPI(t)
	admin := api.register(t, "Admin", "admin@example.com", "admin")
	org := api.register(t, "Org", "org@example.com", "organizer")
	vol := api.register(t, "Vol", "vol@example.com", "volunteer")

	created := api.createInitiative(t, org.AccessToken, "Cleanup")
	api.approve(t, admin.AccessToken, created.ID)
	api.apply(t, vol.AccessToken, created.ID)

	rec := api.do(t, http.MethodGet, "/api/admin/metrics", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m struct {
		TotalUsers           int            `json:"total_users"`
		UsersByRole          map[string]int `json:"users_by_role"`
		TotalInitiatives     int            `json:"total_initiatives"`
		InitiativesByStatus  map[string]int `json:"initiatives_by_status"`
		TotalApplications    int            `json:"total_applications"`
		ApplicationsByStatus map[string]int `json:"applications_by_status"`
	}
	decode(t, rec, &m)
	assert.Equal(t, 3, m.TotalUsers)
	assert.Equal(t, 1, m.UsersByRole["admin"])
	assert.Equal(t, 1, m.TotalInitiatives)
	assert.Equal(t, 1, m.InitiativesByStatus["approved"])
	assert.Equal(t, 1, m.TotalApplications)
	assert.Equal(t, 1, m.ApplicationsByStatus["Pending"])
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
