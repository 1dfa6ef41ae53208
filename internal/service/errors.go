package service

import "errors"

var (
	// ErrUsernameTaken maps to 409 Conflict.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so login failures carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoteNotFound covers both a missing note and a note owned by
	// someone else; existence is never leaked to non-owners.
	ErrNoteNotFound = errors.New("note not found")
)
