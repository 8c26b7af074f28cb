package domain

import (
	"fmt"
	"time"
)

// AuthState is the observable authentication state.
//
// SecretKey is set only while Status is StatusAuthenticated. Error is the user-facing
// message for Err.
type AuthState struct {
	Status    Status
	UserID    string
	SecretKey string
	ExpiresOn time.Time
	Error     string
	Err       error
}

// IsAuthenticated reports whether the state holds an unlocked Secret Key.
func (s AuthState) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// String omits the Secret Key.
func (s AuthState) String() string {
	return fmt.Sprintf(
		"AuthState{Status: %s, UserID: %q, ExpiresOn: %s, Error: %q}",
		s.Status, s.UserID, s.ExpiresOn.Format(time.RFC3339), s.Error,
	)
}
