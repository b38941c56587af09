package model

import "time"

// ApplicationStatus is the closed set of application states.  An application
// starts Pending and moves to exactly one of Approved or Denied; both are
// terminal, re-opening is not allowed.
type ApplicationStatus string

const (
    StatusPending  ApplicationStatus = "Pending"
    StatusApproved ApplicationStatus = "Approved"
    StatusDenied   ApplicationStatus = "Denied"
)

// Final reports whether s is a terminal status.
func (s ApplicationStatus) Final() bool {
    return s == StatusApproved || s == StatusDenied
}

// ValidTarget reports whether s is a status an organizer or admin may set.
// Pending is the initial state only and is never a valid transition target.
func (s ApplicationStatus) ValidTarget() bool {
    return s == StatusApproved || s == StatusDenied
}

// Application records a volunteer's request to participate in an initiative.
// At most one application exists per (volunteer, initiative) pair.
//
// Fields:
//  ID           – primary key identifier.
//  Status       – Pending, Approved or Denied.
//  VolunteerID  – applying volunteer.
//  InitiativeID – target initiative.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Application struct {
    ID           uint64            // applications.id
    Status       ApplicationStatus // applications.status
    VolunteerID  uint64            // applications.volunteer_id
    InitiativeID uint64            // applications.initiative_id
    CreatedAt    time.Time         // applications.created_at
    UpdatedAt    time.Time         // applications.updated_at
}
