package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/volunteer-hub/internal/model"
	"github.com/iliyamo/volunteer-hub/internal/policy"
	"github.com/iliyamo/volunteer-hub/internal/repository"
)

// InitiativeHandler serves initiative CRUD. List and single-item reads run
// behind OptionalAuth so the visibility rules can personalize per role;
// writes run behind JWTAuth plus a role gate.
type InitiativeHandler struct {
	Initiatives *repository.InitiativeRepo
}

func NewInitiativeHandler(i *repository.InitiativeRepo) *InitiativeHandler {
	return &InitiativeHandler{Initiatives: i}
}

type initiativeReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"` // RFC 3339
	Category    string   `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// List handles GET /api/initiatives. The visible subset depends on who is
// asking: everything for admins, approved plus own for organizers,
// approved only for everyone else.
func (h *InitiativeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Initiatives.ListVisibleFor(ctx, currentUser(c))
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toInitiativeViews(items))
}

// Get handles GET /api/initiatives/:id. An unapproved initiative is
// reported as not found to anyone who is neither its organizer nor an
// admin, so its existence never leaks.
func (h *InitiativeHandler) Get(c echo.Context) error {
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
	if !policy.CanViewInitiative(currentUser(c), i) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
	}
	return c.JSON(http.StatusOK, toInitiativeView(i))
}

// Create handles POST /api/initiatives. The caller becomes the organizer;
// the initiative starts unapproved regardless of input.
func (h *InitiativeHandler) Create(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	var req initiativeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "title, description and category are required"})
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "date must be RFC 3339"})
	}

	i := model.Initiative{
		Title:       req.Title,
		Description: req.Description,
		Date:        date.UTC(),
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OrganizerID: u.ID,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Initiatives.Create(ctx, &i); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusCreated, toInitiativeView(i))
}

// Update handles PUT /api/initiatives/:id. Only the owning organizer or an
// admin may edit; missing fields keep their current values. Non-viewers
// get the same 404 as a missing row.
func (h *InitiativeHandler) Update(c echo.Context) error {
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
	if !policy.CanEditInitiative(u, i) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	var req initiativeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		i.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		i.Description = d
	}
	if cat := strings.TrimSpace(req.Category); cat != "" {
		i.Category = cat
	}
	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "date must be RFC 3339"})
		}
		i.Date = date.UTC()
	}
	if req.ImageURL != nil {
		i.ImageURL = req.ImageURL
	}
	if req.Address != nil {
		i.Address = req.Address
	}
	if req.Latitude != nil {
		i.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		i.Longitude = req.Longitude
	}

	if err := h.Initiatives.Update(ctx, &i); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, toInitiativeView(i))
}

// Delete handles DELETE /api/initiatives/:id. Deletion cascades to the
// initiative's applications and comments.
func (h *InitiativeHandler) Delete(c echo.Context) error {
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
	if !policy.CanEditInitiative(u, i) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	if err := h.Initiatives.Delete(ctx, id); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "initiative deleted"})
}
