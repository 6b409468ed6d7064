package repository

import "errors"

var (
	// ErrNotFound indicates no row matched the query filter. Ownership
	// checks on forms surface through this same error.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates the unique email constraint rejected a
	// user insert.
	ErrDuplicateEmail = errors.New("email already registered")
)
