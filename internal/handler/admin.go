package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/volunteer-hub/internal/queue"
	"github.com/iliyamo/volunteer-hub/internal/repository"
	queue_publisher "github.com/iliyamo/volunteer-hub/internal/service"
)

// AdminHandler serves moderation endpoints. All routes are mounted behind
// the admin role gate, so handlers here do not re-check roles.
type AdminHandler struct {
	Users       *repository.UserRepo
	Initiatives *repository.InitiativeRepo
	Metrics     *repository.MetricsRepo
}

func NewAdminHandler(u *repository.UserRepo, i *repository.InitiativeRepo, m *repository.MetricsRepo) *AdminHandler {
	return &AdminHandler{Users: u, Initiatives: i, Metrics: m}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return serverError(c, err)
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(u))
}

// DeleteUser handles DELETE /api/admin/users/:id with the full ownership
// cascade.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "user deleted"})
}

// ListUnapproved handles GET /api/admin/initiatives/unapproved.
func (h *AdminHandler) ListUnapproved(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Initiatives.ListUnapproved(ctx)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toInitiativeViews(items))
}

// Approve handles PUT /api/initiatives/:id/approve. Approving twice is a
// no-op. On success an initiative.approved event goes to the broker; a
// publish failure is logged inside the publisher and deliberately ignored,
// approval must not depend on broker availability.
func (h *AdminHandler) Approve(c echo.Context) error {
	admin := currentUser(c)
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
	alreadyApproved := i.Approved

	if err := h.Initiatives.Approve(ctx, id); err != nil {
		return serverError(c, err)
	}

	if !alreadyApproved {
		organizerName := ""
		if org, err := h.Users.GetByID(ctx, i.OrganizerID); err == nil {
			organizerName = org.Name
		}
		_ = queue_publisher.PublishInitiativeApproved(ctx, queue.InitiativeApprovedEvent{
			InitiativeID:  i.ID,
			Title:         i.Title,
			Category:      i.Category,
			OrganizerID:   i.OrganizerID,
			OrganizerName: organizerName,
			ApprovedBy:    admin.ID,
			ApprovedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	i.Approved = true
	return c.JSON(http.StatusOK, toInitiativeView(i))
}

// GetMetrics handles GET /api/admin/metrics: pure read-side aggregation.
func (h *AdminHandler) GetMetrics(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Metrics.Collect(ctx)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
