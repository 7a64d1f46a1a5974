// Package repository implements the database/sql persistence layer.  This
// file defines sentinel errors shared across repositories so handlers can
// map failure scenarios onto HTTP statuses without inspecting SQL errors.
package repository

import "errors"

// ErrConflict is returned when a mutation cannot proceed because of
// dependent state, such as deleting a category that still has sessions or
// deleting a session that has reservations.  Handlers translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrCapacityExceeded is returned by the reservation writer when the
// requested quantity does not fit in the session's remaining seats.  The
// check runs inside the insert transaction, so this is authoritative, not a
// stale pre-check.  Handlers translate it into an HTTP 409 response.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrCategoryNotFound is returned when a category id or slug does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ErrReservationNotFound is returned when a reservation id does not exist.
var ErrReservationNotFound = errors.New("reservation not found")
