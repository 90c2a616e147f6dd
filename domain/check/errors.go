package check

import "errors"

var (
	// ErrValidation indicates the navigation configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the requested report does not exist.
	ErrNotFound = errors.New("not found")
)
