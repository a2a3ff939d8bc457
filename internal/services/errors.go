package services

import (
	"errors"
	"fmt"
)

// Sentinel kinds of domain failure. Every *DomainError unwraps to one of them,
// so callers classify with errors.Is.
var (
	ErrValidation             = errors.New("validation failed")
	ErrNotFound               = errors.New("not found")
	ErrInactive               = errors.New("inactive")
	ErrInvalidTime            = errors.New("invalid appointment time")
	ErrConflictingAppointment = errors.New("conflicting appointment")
	ErrDuplicateField         = errors.New("duplicate field")
	ErrPasswordMismatch       = errors.New("password mismatch")
	ErrUnderage               = errors.New("underage")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrForbidden              = errors.New("forbidden")
)

// DomainError is a classified, client-safe failure.
type DomainError struct {
	Kind    error
	Field   string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func duplicateField(field, message string) *DomainError {
	return &DomainError{Kind: ErrDuplicateField, Field: field, Message: message}
}

// invalidCredentials is shared by every login failure so callers cannot tell
// an unknown account from a wrong password.
func invalidCredentials() *DomainError {
	return &DomainError{Kind: ErrInvalidCredentials, Message: "Invalid email or password"}
}
