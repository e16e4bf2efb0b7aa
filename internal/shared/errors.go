package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict indicates the resource already exists.
	ErrConflict = errors.New("already exists")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
)
