package domain

import (
	"github.com/allisson/notekeeper/internal/errors"
)

// Account and authentication errors.
var (
	// ErrAccountNotFound indicates no account has the requested id or username.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrUsernameTaken indicates registration with a username that already exists.
	ErrUsernameTaken = errors.NewPublic(errors.ErrConflict, "Username is already taken")

	// ErrInvalidCredentials is returned for an unknown username or a wrong password alike.
	ErrInvalidCredentials = errors.NewPublic(errors.ErrUnauthorized, "Invalid username or password")

	// ErrTokenNotFound indicates no auth token matches the presented cookie.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "auth token not found")

	// ErrTokenInactive indicates an expired, revoked or unknown auth cookie.
	ErrTokenInactive = errors.NewPublic(errors.ErrUnauthorized, "Authentication is required")
)
