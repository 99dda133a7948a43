package domain

import "errors"

// ErrNotFound is returned when the requested event or storage key does not
// exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when form or API input fails the checks applied
// at the input surface (missing title, malformed date, unknown category).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
