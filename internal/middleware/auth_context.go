package middleware

// auth_context.go defines helpers shared across middleware files for
// reading the identity resolved by JWTAuth or OptionalAuth.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/volunteer-hub/internal/model"
)

// CurrentUser returns the user resolved by JWTAuth or OptionalAuth, or nil
// when the request is anonymous.
func CurrentUser(c echo.Context) *model.User {
    if u, ok := c.Get(userContextKey).(*model.User); ok {
        return u
    }
    return nil
}

// currentUserKey returns a stable string identifier for rate-limit keys:
// the user ID when authenticated, "anon" otherwise.
func currentUserKey(c echo.Context) string {
    if u := CurrentUser(c); u != nil {
        return strconv.FormatUint(u.ID, 10)
    }
    return "anon"
}
