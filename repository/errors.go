package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a custom design is not in the expected status
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrProtectedUser is returned when deleting an administrator
	ErrProtectedUser = errors.New("cannot delete admin user")
)
