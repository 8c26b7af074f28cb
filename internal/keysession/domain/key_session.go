// Package domain defines key sessions: session-wrapped Secret Keys registered by a
// client after login and fetched back by session id on resume.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeySession is a session-wrapped Secret Key stored under its client-chosen id (keyId).
// SecretKey holds the wire value, sealed at rest when a keeper is configured.
type KeySession struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Username  string
	SecretKey string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the session can still be fetched at now.
func (k *KeySession) Active(now time.Time) bool {
	return k.RevokedAt == nil && now.Before(k.ExpiresAt)
}

// CreateInput carries a key session registration. The owning account and the expiry
// come from the authenticated principal.
type CreateInput struct {
	Username         string
	SessionSecretKey string
	KeyID            uuid.UUID
}

// LookupInput identifies a key session by owner and id.
type LookupInput struct {
	Username string
	KeyID    uuid.UUID
}
