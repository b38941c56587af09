package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/volunteer-hub/internal/model"
	"github.com/iliyamo/volunteer-hub/internal/policy"
	"github.com/iliyamo/volunteer-hub/internal/repository"
)

// ApplicationHandler serves the volunteer→initiative application
// lifecycle: applying, listing, status decisions and withdrawal.
type ApplicationHandler struct {
	Applications *repository.ApplicationRepo
	Initiatives  *repository.InitiativeRepo
}

func NewApplicationHandler(a *repository.ApplicationRepo, i *repository.InitiativeRepo) *ApplicationHandler {
	return &ApplicationHandler{Applications: a, Initiatives: i}
}

// Apply handles POST /api/applications. A volunteer may hold at most one
// application per initiative; the target must be visible to them, so
// applying to an unapproved initiative reports not found.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	var req struct {
		InitiativeID uint64 `json:"initiativeId"`
	}
	if err := c.Bind(&req); err != nil || req.InitiativeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "initiativeId required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	i, err := h.Initiatives.GetByID(ctx, req.InitiativeID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
		}
		return serverError(c, err)
	}
	if !policy.CanViewInitiative(u, i) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
	}

	a, err := h.Applications.Create(ctx, u.ID, req.InitiativeID)
	if err != nil {
		if err == repository.ErrDuplicateApplication {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "already applied to this initiative"})
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           a.ID,
		"status":       string(a.Status),
		"initiativeId": a.InitiativeID,
	})
}

// SetStatus handles PUT /api/applications/:id. Only the initiative's
// organizer or an admin may decide, the target status must be Approved or
// Denied, and a decided application cannot be re-decided.
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	u := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Applications.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "application not found"})
		}
		return serverError(c, err)
	}
	i, err := h.Initiatives.GetByID(ctx, a.InitiativeID)
	if err != nil {
		return serverError(c, err)
	}
	if !policy.CanModerateApplications(u, i) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	next := model.ApplicationStatus(req.Status)
	if !next.ValidTarget() {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "status must be Approved or Denied"})
	}
	if a.Status.Final() {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "application already decided"})
	}

	if err := h.Applications.UpdateStatus(ctx, id, next); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "status": string(next)})
}

// Withdraw handles DELETE /api/applications/:id. The owning volunteer may
// withdraw while the application is still Pending; admins may always
// delete.
func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	u := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Applications.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "application not found"})
		}
		return serverError(c, err)
	}
	if !policy.CanWithdrawApplication(u, a) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	if err := h.Applications.Delete(ctx, id); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "application deleted"})
}

// ListMine handles GET /api/applications/user: the volunteer's own
// applications with initiative summaries.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Applications.ListByVolunteer(ctx, u.ID)
	if err != nil {
		return serverError(c, err)
	}
	out := make([]volunteerApplicationView, 0, len(items))
	for _, a := range items {
		out = append(out, toVolunteerApplicationView(a))
	}
	return c.JSON(http.StatusOK, out)
}

// ListForOrganizer handles GET /api/applications/organizer: applications
// across every initiative the caller owns.
func (h *ApplicationHandler) ListForOrganizer(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Applications.ListByOrganizer(ctx, u.ID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toOrganizerApplicationViews(items))
}

// ListForInitiative handles GET /api/applications/initiative/:id, gated to
// the initiative's organizer or an admin.
func (h *ApplicationHandler) ListForInitiative(c echo.Context) error {
	u := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	i, err := h.Initiatives.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
		}
		return serverError(c, err)
	}
	if !policy.CanViewInitiative(u, i) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
	}
	if !policy.CanModerateApplications(u, i) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	items, err := h.Applications.ListByInitiative(ctx, id)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toOrganizerApplicationViews(items))
}
