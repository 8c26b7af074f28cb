// Package usecase implements the client-side Session Key Manager: login, resume, logout
// and the expiry timer, on top of an Auth Backend and a Session Store.
package usecase

import (
	"context"
	"time"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// AuthBackend is the remote Auth Backend. Implementations return errors wrapping
// sessionDomain.ErrNetwork for transport failures and *sessionDomain.AuthRejectedError
// for non-2xx answers.
type AuthBackend interface {
	// Register creates an account. Returns the new user id.
	Register(ctx context.Context, username, password string) (string, error)

	// Authenticate verifies credentials and returns the account-level wrapped Secret Key.
	Authenticate(ctx context.Context, credential sessionDomain.Credential) (*sessionDomain.AuthenticateResult, error)

	// CreateSession registers a session-wrapped Secret Key under keyID.
	CreateSession(ctx context.Context, username, sessionSecretKey, keyID string) error

	// FetchSession returns the session-wrapped Secret Key stored under keyID.
	FetchSession(ctx context.Context, username, keyID string) (string, error)

	// RevokeSession invalidates the session stored under keyID.
	RevokeSession(ctx context.Context, username, keyID string) error
}

// SessionStore is a durable string key/value store for session metadata.
type SessionStore interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// Timer is a stoppable single-shot timer.
type Timer interface {
	Stop() bool
}

// Clock abstracts time for the expiry timer.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SessionManager is the Session Key Manager.
//
// Login and Resume never return errors: the outcome, including any typed error, is the
// returned AuthState, which is also published to subscribers.
type SessionManager interface {
	// Login authenticates, unlocks the Secret Key and registers a fresh key session. Any
	// previous session is ended first, whether or not the new login succeeds.
	Login(ctx context.Context, credential sessionDomain.Credential) sessionDomain.AuthState

	// Resume restores the previous session from the Session Store without the password.
	Resume(ctx context.Context) sessionDomain.AuthState

	// Logout stops the expiry timer and clears all persisted metadata. It never fails.
	Logout(ctx context.Context)

	// Register creates an account on the Auth Backend.
	Register(ctx context.Context, credential sessionDomain.Credential) error

	// ClearError resets the user-facing error of the current state.
	ClearError()

	// State returns the current AuthState.
	State() sessionDomain.AuthState

	// Subscribe registers fn for every state change and returns a cancel function.
	Subscribe(fn func(sessionDomain.AuthState)) func()
}

type realClock struct{}

// NewRealClock returns a Clock backed by the time package.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
