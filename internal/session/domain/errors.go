package domain

import (
	"fmt"

	"github.com/allisson/notekeeper/internal/errors"
)

// Session error definitions.
var (
	// ErrNetwork indicates the Auth Backend could not be reached or returned an
	// unreadable response.
	ErrNetwork = errors.Wrap(errors.ErrUnavailable, "auth backend unreachable")

	// ErrSecretTampered indicates the account-level wrap of the Secret Key failed
	// verification during login.
	ErrSecretTampered = errors.Wrap(errors.ErrIntegrity, "secret tampered")

	// ErrKeyTampered indicates the session-level wrap failed verification or decryption
	// during resume.
	ErrKeyTampered = errors.Wrap(errors.ErrIntegrity, "key tampered")

	// ErrMissingCredentials indicates an authenticate response without expiresOn,
	// userId or secretKey.
	ErrMissingCredentials = errors.Wrap(errors.ErrInvalidInput, "missing required credentials")

	// ErrInvalidSecretKey indicates a decrypted Secret Key of the wrong length.
	ErrInvalidSecretKey = errors.Wrap(errors.ErrInvalidInput, "invalid secret key")
)

// AuthRejectedError is a non-2xx answer from the Auth Backend.
type AuthRejectedError struct {
	StatusCode int
	Message    string
}

func (e *AuthRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth backend rejected request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("auth backend rejected request with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap makes every rejection match errors.ErrUnauthorized.
func (e *AuthRejectedError) Unwrap() error {
	return errors.ErrUnauthorized
}

// Message maps an error to the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var rejected *AuthRejectedError
	switch {
	case errors.Is(err, ErrSecretTampered):
		return MessageSecretTampered
	case errors.Is(err, ErrKeyTampered):
		return MessageKeyTampered
	case errors.Is(err, ErrMissingCredentials):
		return MessageMissingCredentials
	case errors.Is(err, ErrNetwork):
		return MessageNetwork
	case errors.As(err, &rejected):
		if rejected.Message == "" {
			return MessageNetwork
		}
		return rejected.Message
	default:
		return MessageUnknown
	}
}
