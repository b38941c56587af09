// Package queue defines message payloads exchanged over the message broker.
package queue

// InitiativeApprovedEvent is published when an admin approves an initiative
// for public visibility. It carries enough information for downstream
// consumers to log, notify the organizer, or trigger analytics without
// querying the primary database.
type InitiativeApprovedEvent struct {
    InitiativeID  uint64 `json:"initiative_id"`
    Title         string `json:"title"`
    Category      string `json:"category"`
    OrganizerID   uint64 `json:"organizer_id"`
    OrganizerName string `json:"organizer_name"`
    ApprovedBy    uint64 `json:"approved_by"`
    ApprovedAt    string `json:"approved_at"`
}
