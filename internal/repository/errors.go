// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a requested entity does not
// exist (or is deliberately masked from the viewer), while
// ErrDuplicateApplication signals that a volunteer already applied
// to the initiative in question.
package repository

import "errors"

// ErrNotFound is returned when an entity does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering or updating a user with
// an email address that another account already uses. Handlers should
// translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateApplication is returned when a volunteer applies to an
// initiative they already have an application for. Handlers should
// translate this into an HTTP 400 response.
var ErrDuplicateApplication = errors.New("application already exists")

// ErrInvalidStatus is returned when an application status update names
// a status outside {Approved, Denied} or the application is already in
// a terminal state. Handlers should translate this into an HTTP 400
// response.
var ErrInvalidStatus = errors.New("invalid status")

// ErrTokenNotFound is returned when a refresh token is absent from the
// store, either because it was never issued, already consumed, or
// revoked. Handlers should translate this into an HTTP 401 response.
var ErrTokenNotFound = errors.New("refresh token not found")

// ErrTokenExpired is returned when a stored refresh token is past its
// expiry. The stale row is deleted before this error is returned.
var ErrTokenExpired = errors.New("refresh token expired")
