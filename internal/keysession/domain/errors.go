package domain

import (
	"github.com/allisson/notekeeper/internal/errors"
)

var (
	// ErrKeySessionNotFound covers unknown, expired, revoked and foreign sessions alike.
	ErrKeySessionNotFound = errors.NewPublic(errors.ErrUnauthorized, "Session expired or not found")

	// ErrKeySessionExists indicates the keyId is already registered.
	ErrKeySessionExists = errors.NewPublic(errors.ErrConflict, "Session already exists")

	// ErrAccountMismatch indicates the username does not belong to the authenticated account.
	ErrAccountMismatch = errors.NewPublic(errors.ErrForbidden, "Username does not match the authenticated account")
)
