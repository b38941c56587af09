package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"volunteer", RoleVolunteer},
		{"organizer", RoleOrganizer},
		{"admin", RoleAdmin},
		{"", RoleVolunteer},
		{"superuser", RoleVolunteer},
		{"Admin", RoleVolunteer}, // callers normalize case before parsing
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseRole(tc.in), "input %q", tc.in)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleVolunteer.Valid())
	assert.True(t, RoleOrganizer.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("guest").Valid())
	assert.False(t, Role("").Valid())
}

func TestApplicationStatusFinal(t *testing.T) {
	assert.False(t, StatusPending.Final())
	assert.True(t, StatusApproved.Final())
	assert.True(t, StatusDenied.Final())
}

func TestApplicationStatusValidTarget(t *testing.T) {
	assert.True(t, StatusApproved.ValidTarget())
	assert.True(t, StatusDenied.ValidTarget())
	assert.False(t, StatusPending.ValidTarget())
	assert.False(t, ApplicationStatus("approved").ValidTarget(), "statuses are case sensitive")
	assert.False(t, ApplicationStatus("Cancelled").ValidTarget())
}
