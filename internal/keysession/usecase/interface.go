// Package usecase implements key session registration, retrieval, revocation and cleanup.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
)

// KeySessionRepository persists key sessions.
type KeySessionRepository interface {
	// Create returns ErrKeySessionExists when the id is already registered.
	Create(ctx context.Context, session *keysessionDomain.KeySession) error
	// GetByID returns ErrKeySessionNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*keysessionDomain.KeySession, error)
	Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]*keysessionDomain.KeySession, error)
	// DeleteExpired removes sessions that expired or were revoked before olderThan.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// KeySessionUseCase defines the key session operations of the Auth Backend.
type KeySessionUseCase interface {
	// Create stores a session-wrapped Secret Key for the principal's account. The session
	// expires together with the principal's auth token.
	Create(
		ctx context.Context,
		principal *accountDomain.Principal,
		input *keysessionDomain.CreateInput,
	) (*keysessionDomain.KeySession, error)

	// Fetch returns the wire value registered under the session id. Unknown, foreign,
	// expired and revoked sessions all yield ErrKeySessionNotFound.
	Fetch(ctx context.Context, input *keysessionDomain.LookupInput) (string, error)

	// Revoke marks the session revoked. Revoking an unknown or already revoked session
	// succeeds.
	Revoke(ctx context.Context, input *keysessionDomain.LookupInput) error

	// List returns the account's sessions, newest first, without key material.
	List(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]*keysessionDomain.KeySession, error)

	// CleanupExpired deletes sessions that ended more than days ago. With dryRun it only
	// counts them.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
