// Package usecase implements the account business logic of the reference Auth Backend:
// registration with an account-level wrapped Secret Key, password authentication that
// issues auth cookies, and cookie resolution for protected endpoints.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
)

// AccountRepository persists accounts.
type AccountRepository interface {
	// Create inserts an account. Returns ErrUsernameTaken when the username exists.
	Create(ctx context.Context, account *accountDomain.Account) error

	GetByID(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error)

	GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error)
}

// AuthTokenRepository persists auth token hashes.
type AuthTokenRepository interface {
	Create(ctx context.Context, token *accountDomain.AuthToken) error

	GetByTokenHash(ctx context.Context, tokenHash string) (*accountDomain.AuthToken, error)

	// DeleteExpired removes tokens that expired before olderThan.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	// CountExpired counts tokens DeleteExpired would remove.
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// AccountUseCase is the account API consumed by HTTP handlers and CLI commands.
type AccountUseCase interface {
	// Register creates an account with a freshly generated Secret Key wrapped under the
	// password. The plain Secret Key is discarded once wrapped.
	Register(ctx context.Context, input *accountDomain.RegisterInput) (*accountDomain.Account, error)

	// Authenticate verifies credentials and issues an auth token. Unknown usernames and
	// wrong passwords both return ErrInvalidCredentials.
	Authenticate(
		ctx context.Context,
		input *accountDomain.AuthenticateInput,
	) (*accountDomain.AuthenticateOutput, error)

	// AuthenticateToken resolves a plain auth cookie value to its account and token.
	AuthenticateToken(ctx context.Context, plainToken string) (*accountDomain.Principal, error)

	// CleanupExpiredTokens deletes auth tokens that expired more than days ago. With
	// dryRun set it only counts them.
	CleanupExpiredTokens(ctx context.Context, days int, dryRun bool) (int64, error)
}
