package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the stored side of an auth cookie. Only the SHA-256 hash of the cookie
// value is kept.
type AuthToken struct {
	ID        uuid.UUID
	TokenHash string
	AccountID uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the token can still authenticate requests at now.
func (t *AuthToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// Principal is the authenticated caller resolved from an auth cookie.
type Principal struct {
	Account *Account
	Token   *AuthToken
}
