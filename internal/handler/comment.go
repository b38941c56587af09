package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/volunteer-hub/internal/model"
	"github.com/iliyamo/volunteer-hub/internal/policy"
	"github.com/iliyamo/volunteer-hub/internal/repository"
)

// CommentHandler serves comments on initiatives.
type CommentHandler struct {
	Comments    *repository.CommentRepo
	Initiatives *repository.InitiativeRepo
}

func NewCommentHandler(cm *repository.CommentRepo, i *repository.InitiativeRepo) *CommentHandler {
	return &CommentHandler{Comments: cm, Initiatives: i}
}

// visibleInitiative loads the initiative and applies the same 404 masking
// as the initiative endpoints; commenting on an initiative the caller
// cannot see must not confirm that it exists.
func (h *CommentHandler) visibleInitiative(c echo.Context, id uint64) (model.Initiative, bool, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	i, err := h.Initiatives.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return model.Initiative{}, false, nil
		}
		return model.Initiative{}, false, err
	}
	if !policy.CanViewInitiative(currentUser(c), i) {
		return model.Initiative{}, false, nil
	}
	return i, true, nil
}

// Add handles POST /api/initiatives/:id/comments.
func (h *CommentHandler) Add(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "content must not be empty"})
	}

	_, ok, err := h.visibleInitiative(c, id)
	if err != nil {
		return serverError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cm := model.Comment{Content: req.Content, UserID: u.ID, InitiativeID: id}
	if err := h.Comments.Create(ctx, &cm); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusCreated, toCommentView(repository.CommentWithAuthor{
		Comment: cm, AuthorName: u.Name, AuthorEmail: u.Email,
	}))
}

// ListByInitiative handles GET /api/initiatives/:id/comments, oldest first.
func (h *CommentHandler) ListByInitiative(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	_, ok, err := h.visibleInitiative(c, id)
	if err != nil {
		return serverError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "initiative not found"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Comments.ListByInitiative(ctx, id)
	if err != nil {
		return serverError(c, err)
	}
	out := make([]commentView, 0, len(items))
	for _, cm := range items {
		out = append(out, toCommentView(cm))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /api/comments/:id, allowed to the author or an
// admin.
func (h *CommentHandler) Delete(c echo.Context) error {
	u := currentUser(c)
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cm, err := h.Comments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "comment not found"})
		}
		return serverError(c, err)
	}
	if !policy.CanDeleteComment(u, cm) {
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
	}

	if err := h.Comments.Delete(ctx, id); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "comment deleted"})
}
