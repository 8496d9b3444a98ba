package candidates

import "errors"

var (
	// ErrNotFound indicates the candidate does not exist.
	ErrNotFound = errors.New("candidate not found")
	// ErrInvalidInput indicates a validation failure on caller input.
	ErrInvalidInput = errors.New("invalid input")
)
