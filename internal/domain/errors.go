package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPlanExists is returned by the itinerary service when a generation is
// requested for a trip that already has activities. The existing plan must be
// deleted explicitly before regenerating; this guard prevents silently
// duplicating activities. Handlers should map this to HTTP 409 Conflict.
var ErrPlanExists = errors.New("itinerary already exists")

// ErrNotOwner is returned when the authenticated caller is not the owner of
// the trip being operated on. Handlers should map this to HTTP 403.
var ErrNotOwner = errors.New("not the trip owner")

// ErrNotAuthenticated is returned when no caller identity could be resolved.
// Handlers should map this to HTTP 401.
var ErrNotAuthenticated = errors.New("not authenticated")
