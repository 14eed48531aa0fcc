package common

import (
	"errors"
	"fmt"
)

var (

	// lookup errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// request errors
	ErrorInvalidArgument = errors.New("invalid argument")
	ErrorUnimplemented   = errors.New("not implemented")

	// auth errors
	ErrorPermissionDenied = errors.New("permission denied")
	ErrorUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// service specific errors
	ErrorInternal = errors.New("internal error")
)

// NotFoundError names the entity that could not be found.
// It matches ErrorNotFound via errors.Is.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrorNotFound }

// NewNotFound returns a NotFoundError for entity/id.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidArgumentError reports a rejected input field.
// It matches ErrorInvalidArgument via errors.Is.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return "invalid argument: " + e.Reason
	}
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrorInvalidArgument }

// NewInvalidArgument returns an InvalidArgumentError.
func NewInvalidArgument(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}

// AlreadyExistsf wraps ErrorAlreadyExists with a formatted message.
func AlreadyExistsf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrorAlreadyExists, fmt.Sprintf(format, args...))
}
