package handler

import (
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/volunteer-hub/internal/auth"       // token issuing and hashing
    "github.com/iliyamo/volunteer-hub/internal/config"     // app configuration
    "github.com/iliyamo/volunteer-hub/internal/model"      // domain types
    "github.com/iliyamo/volunteer-hub/internal/repository" // DB repositories
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // volunteer | organizer | admin (defaults to volunteer)
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type authResp struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         userView `json:"user"`
}

// issuePair mints an access/refresh pair for the user and persists the
// refresh token hash. Every successful issuance writes exactly one
// refresh token row.
func (h *AuthHandler) issuePair(c echo.Context, u model.User) (authResp, error) {
	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := auth.NewRefreshToken(h.Cfg.JWTRefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Tokens.Store(ctx, u.ID, auth.HashRefresh(refresh.Token), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{AccessToken: access.Token, RefreshToken: refresh.Token, User: toUserView(u)}, nil
}

// Register creates a user and returns a token pair immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "name, email and password are required"})
	}
	role := model.ParseRole(strings.ToLower(strings.TrimSpace(req.Role)))

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "user already exists"})
		}
		return serverError(c, err)
	}

	resp, err := h.issuePair(c, u)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair. Unknown email
// and wrong password produce the same response so callers cannot probe
// which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid credentials"})
		}
		return serverError(c, err)
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid credentials"})
	}

	resp, err := h.issuePair(c, u)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new pair. The old token is
// consumed atomically with storing the new one, so a refresh token can be
// used exactly once; replaying it after a successful exchange fails.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "refreshToken required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	// Signature check first: a token we never signed is rejected without
	// touching the store.
	userID, err := auth.VerifyToken(h.Cfg.JWTRefreshSecret, raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid refresh token"})
	}
	oldHash := auth.HashRefresh(raw)

	ctx, cancel := reqCtx(c)
	defer cancel()

	// The stored row must exist for the exact (token, user) pair and be
	// within its server-side expiry. Expired rows are deleted on sight.
	if _, err := h.Tokens.Find(ctx, oldHash, userID); err != nil {
		switch err {
		case repository.ErrTokenExpired:
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "refresh token expired"})
		case repository.ErrTokenNotFound:
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid refresh token"})
		default:
			return serverError(c, err)
		}
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid refresh token"})
		}
		return serverError(c, err)
	}

	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return serverError(c, err)
	}
	next, err := auth.NewRefreshToken(h.Cfg.JWTRefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return serverError(c, err)
	}
	if err := h.Tokens.Rotate(ctx, u.ID, oldHash, auth.HashRefresh(next.Token), next.Exp); err != nil {
		if err == repository.ErrTokenNotFound {
			// Lost the race with a concurrent exchange of the same token.
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid refresh token"})
		}
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, authResp{
		AccessToken:  access.Token,
		RefreshToken: next.Token,
		User:         toUserView(u),
	})
}

// Logout revokes the posted refresh token. An unknown token is a client
// error, not a server fault.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "refreshToken required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Tokens.Delete(ctx, auth.HashRefresh(strings.TrimSpace(req.RefreshToken))); err != nil {
		if err == repository.ErrTokenNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid refresh token"})
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "logged out"})
}

// Profile returns the identity resolved from the access token.
func (h *AuthHandler) Profile(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "unauthorized"})
	}
	return c.JSON(http.StatusOK, toUserView(*u))
}
