package middleware

import (
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/volunteer-hub/internal/auth"
    "github.com/iliyamo/volunteer-hub/internal/repository"
)

// OptionalAuth resolves an identity when a valid bearer token is present
// and silently proceeds without one otherwise.  It is used on
// public-but-personalized endpoints such as the initiative listing, where
// an organizer sees their own unapproved initiatives but an anonymous
// caller still gets the approved set.  Absence, malformed tokens and
// tokens for deleted users are all treated the same: no identity.
func OptionalAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            userID, err := auth.VerifyToken(secret, raw)
            if err != nil {
                return next(c)
            }
            u, err := users.GetByID(c.Request().Context(), userID)
            if err != nil {
                return next(c)
            }
            c.Set(userContextKey, &u)
            return next(c)
        }
    }
}
