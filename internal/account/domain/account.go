// Package domain defines the account model of the reference Auth Backend: registered
// users, their password hashes, their account-level wrapped Secret Keys and the auth
// tokens handed out as cookies.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. SecretKey holds the wire form of the Secret Key wrapped
// under the user's password; the plain key never reaches the server after registration.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	SecretKey    string
	CreatedAt    time.Time
}

// RegisterInput contains the credentials for a new account.
type RegisterInput struct {
	Username string
	Password string
}

// AuthenticateInput contains the credentials of an authenticate request.
type AuthenticateInput struct {
	Username string
	Password string
}

// AuthenticateOutput is returned by a successful authentication. PlainToken is set as
// the auth cookie and is never stored.
type AuthenticateOutput struct {
	Account    *Account
	PlainToken string
	ExpiresAt  time.Time
}
