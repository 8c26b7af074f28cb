// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases and clients wrap these sentinels and
// handlers map them to HTTP status codes or user-facing messages.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a remote dependency could not be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrIntegrity indicates that authenticated material failed its integrity check.
	ErrIntegrity = errors.New("integrity check failed")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// PublicError is a domain error whose message is safe to return to API clients.
// It unwraps to one of the sentinels above so handlers can pick a status code.
type PublicError struct {
	kind    error
	message string
}

// NewPublic creates a PublicError of the given kind.
func NewPublic(kind error, message string) error {
	return &PublicError{kind: kind, message: message}
}

func (e *PublicError) Error() string { return e.message }

func (e *PublicError) Unwrap() error { return e.kind }

// PublicMessage returns the message of the first PublicError in err's tree.
func PublicMessage(err error) (string, bool) {
	var publicErr *PublicError
	if errors.As(err, &publicErr) {
		return publicErr.message, true
	}
	return "", false
}
