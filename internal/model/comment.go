package model

import "time"

// Comment is a short message left on an initiative by any authenticated
// user.  Comments are deletable by their author or an admin and are removed
// when the initiative or the author is deleted.
//
// Fields:
//  ID           – primary key identifier.
//  Content      – comment text.
//  UserID       – author.
//  InitiativeID – initiative the comment belongs to.
//  CreatedAt    – timestamp of creation.
type Comment struct {
    ID           uint64    // comments.id
    Content      string    // comments.content
    UserID       uint64    // comments.user_id
    InitiativeID uint64    // comments.initiative_id
    CreatedAt    time.Time // comments.created_at
}
