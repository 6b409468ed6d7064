package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown email and password mismatch
	// so login failures don't reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDenied indicates a valid identity operating on a resource
	// whose parent form belongs to someone else.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotAcceptingResponses rejects submissions to forms whose status is
	// not active.
	ErrNotAcceptingResponses = errors.New("this form is not accepting responses")

	// ErrAirtableNotConnected indicates no refresh token is on file for the
	// user.
	ErrAirtableNotConnected = errors.New("airtable is not connected")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field messages and is rejected at the boundary
// before anything touches persistence.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
