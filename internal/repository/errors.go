package repository

import "errors"

// Sentinel errors shared across repositories so handlers can map failures
// to HTTP statuses without inspecting strings.

// ErrForbidden is returned when the caller attempts an operation on a
// resource belonging to someone else (e.g. reading another user's loans).
// Handlers translate this into a 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because of
// dependent records, such as removing a room that still has schedule
// entries. Handlers translate this into a 409.
var ErrConflict = errors.New("conflict")
