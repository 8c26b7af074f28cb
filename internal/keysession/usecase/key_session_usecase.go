package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
	keysessionService "github.com/allisson/notekeeper/internal/keysession/service"
)

type keySessionUseCase struct {
	txManager database.TxManager
	repo      KeySessionRepository
	sealer    keysessionService.Sealer
	logger    *slog.Logger
	now       func() time.Time
}

func (k *keySessionUseCase) Create(
	ctx context.Context,
	principal *accountDomain.Principal,
	input *keysessionDomain.CreateInput,
) (*keysessionDomain.KeySession, error) {
	if principal == nil || principal.Account == nil || principal.Token == nil {
		return nil, accountDomain.ErrTokenInactive
	}
	if principal.Account.Username != input.Username {
		return nil, keysessionDomain.ErrAccountMismatch
	}

	sealed, err := k.sealer.Seal(ctx, input.SessionSecretKey)
	if err != nil {
		return nil, err
	}

	session := &keysessionDomain.KeySession{
		ID:        input.KeyID,
		AccountID: principal.Account.ID,
		Username:  principal.Account.Username,
		SecretKey: sealed,
		ExpiresAt: principal.Token.ExpiresAt,
		CreatedAt: k.now().UTC(),
	}

	if err := k.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	k.logger.Info("key session created",
		slog.String("user_id", session.Username),
		slog.String("session_id", session.ID.String()),
	)
	return session, nil
}

func (k *keySessionUseCase) Fetch(ctx context.Context, input *keysessionDomain.LookupInput) (string, error) {
	session, err := k.repo.GetByID(ctx, input.KeyID)
	if err != nil {
		return "", err
	}

	if session.Username != input.Username || !session.Active(k.now().UTC()) {
		return "", keysessionDomain.ErrKeySessionNotFound
	}

	return k.sealer.Open(ctx, session.SecretKey)
}

func (k *keySessionUseCase) Revoke(ctx context.Context, input *keysessionDomain.LookupInput) error {
	return k.txManager.WithTx(ctx, func(ctx context.Context) error {
		session, err := k.repo.GetByID(ctx, input.KeyID)
		if err != nil {
			if errors.Is(err, keysessionDomain.ErrKeySessionNotFound) {
				return nil
			}
			return err
		}

		if session.Username != input.Username || session.RevokedAt != nil {
			return nil
		}

		if err := k.repo.Revoke(ctx, session.ID, k.now().UTC()); err != nil {
			return err
		}

		k.logger.Info("key session revoked",
			slog.String("user_id", session.Username),
			slog.String("session_id", session.ID.String()),
		)
		return nil
	})
}

func (k *keySessionUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*keysessionDomain.KeySession, error) {
	sessions, err := k.repo.ListByAccount(ctx, accountID, offset, limit)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		session.SecretKey = ""
	}
	return sessions, nil
}

func (k *keySessionUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")
	}

	cutoff := k.now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return k.repo.CountExpired(ctx, cutoff)
	}

	count, err := k.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	k.logger.Info("expired key sessions deleted", slog.Int64("count", count))
	return count, nil
}

// NewKeySessionUseCase creates a KeySessionUseCase. Stored key material passes through
// sealer on the way in and out.
func NewKeySessionUseCase(
	txManager database.TxManager,
	repo KeySessionRepository,
	sealer keysessionService.Sealer,
	logger *slog.Logger,
) KeySessionUseCase {
	return &keySessionUseCase{
		txManager: txManager,
		repo:      repo,
		sealer:    sealer,
		logger:    logger,
		now:       time.Now,
	}
}
