package model

import "time"

// Role is the closed set of roles a user can hold.  Every authorization
// decision in the application goes through the policy package, which
// consults these values; handlers never compare raw strings.
type Role string

const (
    RoleVolunteer Role = "volunteer" // may apply to initiatives and comment
    RoleOrganizer Role = "organizer" // may create and manage own initiatives
    RoleAdmin     Role = "admin"     // may moderate everything
)

// ParseRole normalizes a client-supplied role string.  Unknown or empty
// values fall back to volunteer, which is the default for registration.
func ParseRole(s string) Role {
    switch Role(s) {
    case RoleOrganizer:
        return RoleOrganizer
    case RoleAdmin:
        return RoleAdmin
    default:
        return RoleVolunteer
    }
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
    return r == RoleVolunteer || r == RoleOrganizer || r == RoleAdmin
}

// User represents an application user record as stored in the `users`
// table.  The password hash never leaves the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of volunteer, organizer, admin.
//  ProfileImage – URL of the profile image in blob storage (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         Role      // users.role
    ProfileImage *string   // users.profile_image (nullable)
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each refresh
// token belongs to a user and is single-use: the row is deleted when the
// token is exchanged or revoked.  The signed token string is not stored;
// only its SHA‑256 hash.  ExpiresAt duplicates the JWT exp claim so the
// store can expire tokens independently of signature verification.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the signed token.
//  ExpiresAt – expiration timestamp of the token.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64    // refresh_tokens.id
    UserID    uint64    // refresh_tokens.user_id
    TokenHash string    // refresh_tokens.token_hash
    ExpiresAt time.Time // refresh_tokens.expires_at
    CreatedAt time.Time // refresh_tokens.created_at
}
