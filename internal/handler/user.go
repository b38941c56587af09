package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/volunteer-hub/internal/auth"
	"github.com/iliyamo/volunteer-hub/internal/config"
	"github.com/iliyamo/volunteer-hub/internal/repository"
)

// UserHandler serves the authenticated user's own profile operations.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	return c.JSON(http.StatusOK, toUserView(*u))
}

// UpdateMe handles PUT /api/users/me. All fields are optional; the image
// is a URL into blob storage, the upload itself happens elsewhere.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	var req struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		ProfileImage *string `json:"profileImage"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	updated, err := h.Users.UpdateProfile(ctx, u.ID, req.Name, req.Email, req.ProfileImage)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email already exists"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		default:
			return serverError(c, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "profile updated", "user": toUserView(updated)})
}

// ChangePassword handles PUT /api/users/change-password. The current
// password must verify before the new one is hashed and persisted.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "currentPassword and newPassword are required"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "wrong current password"})
	}
	hash, err := auth.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return serverError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "password changed"})
}

// DeleteMe handles DELETE /api/users/delete-account. Deletion cascades to
// the user's tokens, comments, applications and owned initiatives.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, u.ID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "account deleted"})
}
