package model

import "time"

// Initiative is a volunteer opportunity posted by an organizer.  A newly
// created initiative starts unapproved and stays hidden from the public
// until an admin approves it; only the owning organizer and admins can see
// it before that.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – short headline.
//  Description – full text description.
//  Date        – when the initiative takes place.
//  Category    – free-form category label.
//  ImageURL    – URL of the cover image in blob storage (nullable).
//  Address     – human-readable address (nullable).
//  Latitude    – map latitude (nullable).
//  Longitude   – map longitude (nullable).
//  Approved    – whether an admin has approved public visibility.
//  OrganizerID – owning organizer.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Initiative struct {
    ID          uint64    // initiatives.id
    Title       string    // initiatives.title
    Description string    // initiatives.description
    Date        time.Time // initiatives.date
    Category    string    // initiatives.category
    ImageURL    *string   // initiatives.image_url (nullable)
    Address     *string   // initiatives.address (nullable)
    Latitude    *float64  // initiatives.latitude (nullable)
    Longitude   *float64  // initiatives.longitude (nullable)
    Approved    bool      // initiatives.approved
    OrganizerID uint64    // initiatives.organizer_id
    CreatedAt   time.Time // initiatives.created_at
    UpdatedAt   time.Time // initiatives.updated_at
}
