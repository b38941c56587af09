package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/volunteer-hub/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  If no identity was
// resolved or the user's role is not in the allowed set, the request is
// aborted with a 403 Forbidden response.  It assumes JWTAuth has stored
// the resolved user in the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    // Build a set of allowed roles for constant‑time lookups.
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            u := CurrentUser(c)
            if u == nil || !allowed[u.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"msg": "forbidden"})
            }
            return next(c)
        }
    }
}

// RequireAdmin is the single-role specialization used on the moderation
// routes.
func RequireAdmin() echo.MiddlewareFunc {
    return RequireRole(model.RoleAdmin)
}
