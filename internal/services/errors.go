package services

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Match them with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateEngagement = errors.New("duplicate engagement")
	ErrParentNotFound      = errors.New("parent not found")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrStorage             = errors.New("storage failure")
)

// Error carries a user-facing message alongside its kind. Cause is only set
// for storage failures and is meant for logs, not for clients.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func storageError(op string, err error) error {
	return &Error{Kind: ErrStorage, Message: op, Cause: err}
}

// Validation wraps a message as ErrValidation. Handlers use it for input
// rejected before it reaches a service.
func Validation(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrValidation, "VALIDATION_FAILED"},
	{ErrNotFound, "NOT_FOUND"},
	{ErrForbidden, "FORBIDDEN"},
	{ErrDuplicateEngagement, "DUPLICATE_ENGAGEMENT"},
	{ErrParentNotFound, "PARENT_NOT_FOUND"},
	{ErrConflict, "CONFLICT"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrStorage, "STORAGE_FAILURE"},
}

// KindOf names the kind of err. Anything unclassified counts as a storage failure.
func KindOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "STORAGE_FAILURE"
}

// MessageOf returns the client-safe message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(err, ErrStorage) {
		return e.Message
	}
	return "Internal server error"
}
