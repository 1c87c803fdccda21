package errs

import (
	"errors"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyReturned = errors.New("loan already returned")
	// ErrInconsistent reports stored facts that break an invariant.
	ErrInconsistent = errors.New("inconsistent state")
)

type ErrorResponse struct {
	Message string `json:"message"`
}
