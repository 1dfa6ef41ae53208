package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write loses to an existing document,
	// e.g. a second registration of the same username.
	ErrConflict = errors.New("conflict")
)
