// Package policy concentrates every authorization decision in one place.
// Handlers ask these predicates instead of comparing roles inline, so the
// rules for who may see, edit or moderate a resource exist exactly once.
// A nil viewer means an anonymous caller.
package policy

import "github.com/iliyamo/volunteer-hub/internal/model"

// CanViewInitiative reports whether the viewer may see the initiative.
// Approved initiatives are visible to everyone.  Unapproved initiatives
// are visible only to their owning organizer and to admins; everyone
// else, including other organizers, is told the initiative does not
// exist so that approval gating never leaks existence.
func CanViewInitiative(viewer *model.User, i model.Initiative) bool {
	if i.Approved {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.Role == model.RoleAdmin || viewer.ID == i.OrganizerID
}

// CanEditInitiative reports whether the viewer may update or delete the
// initiative: the owning organizer or an admin.
func CanEditInitiative(viewer *model.User, i model.Initiative) bool {
	if viewer == nil {
		return false
	}
	return viewer.Role == model.RoleAdmin || viewer.ID == i.OrganizerID
}

// CanApproveInitiative reports whether the viewer may flip the approved
// flag.  Only admins can.
func CanApproveInitiative(viewer *model.User) bool {
	return viewer != nil && viewer.Role == model.RoleAdmin
}

// CanModerateApplications reports whether the viewer may list or decide
// applications on the given initiative: its owning organizer or an admin.
func CanModerateApplications(viewer *model.User, i model.Initiative) bool {
	if viewer == nil {
		return false
	}
	return viewer.Role == model.RoleAdmin || viewer.ID == i.OrganizerID
}

// CanWithdrawApplication reports whether the viewer may delete the
// application.  Admins always can.  The owning volunteer can only while
// the application is still Pending; once decided it is part of the
// organizer's record.
func CanWithdrawApplication(viewer *model.User, a model.Application) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role == model.RoleAdmin {
		return true
	}
	return viewer.ID == a.VolunteerID && !a.Status.Final()
}

// CanDeleteComment reports whether the viewer may delete the comment:
// its author or an admin.
func CanDeleteComment(viewer *model.User, c model.Comment) bool {
	if viewer == nil {
		return false
	}
	return viewer.Role == model.RoleAdmin || viewer.ID == c.UserID
}
