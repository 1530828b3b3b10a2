package store

import "errors"

// Error taxonomy shared by every store. Controllers translate these into
// HTTP statuses: 400, 401, 403, 404, 409; anything else becomes a 500.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)
