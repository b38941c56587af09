package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/volunteer-hub/internal/auth"       // token verification
    "github.com/iliyamo/volunteer-hub/internal/repository" // user lookups
)

// userContextKey is where the resolved *model.User is stored on the Echo
// context by JWTAuth and OptionalAuth.
const userContextKey = "user"

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// loads the matching user row and injects it into the request context.  The
// provided secret must match the one used when issuing access tokens.
// Loading the user on every request means a deleted account or changed role
// takes effect immediately rather than when the token expires.  This
// middleware should wrap protected routes so that handlers can access the
// authenticated user via CurrentUser().
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "missing bearer token"})
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            userID, err := auth.VerifyToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid token"})
            }

            // A valid signature for a user that no longer exists is still
            // unauthorized; the token outlived the account.
            u, err := users.GetByID(c.Request().Context(), userID)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid token"})
            }

            c.Set(userContextKey, &u)
            return next(c)
        }
    }
}
