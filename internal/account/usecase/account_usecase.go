package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	accountService "github.com/allisson/notekeeper/internal/account/service"
	apperrors "github.com/allisson/notekeeper/internal/errors"
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
	keywrapService "github.com/allisson/notekeeper/internal/keywrap/service"
)

type accountUseCase struct {
	accountRepo        AccountRepository
	tokenRepo          AuthTokenRepository
	passwordService    accountService.PasswordService
	tokenService       accountService.TokenService
	secretKeyGenerator accountService.SecretKeyGenerator
	keyWrapper         keywrapService.KeyWrapper
	tokenExpiration    time.Duration
	logger             *slog.Logger
	now                func() time.Time
}

func (a *accountUseCase) Register(
	ctx context.Context,
	input *accountDomain.RegisterInput,
) (*accountDomain.Account, error) {
	secretKey, err := a.secretKeyGenerator.Generate()
	if err != nil {
		return nil, err
	}

	wrapped, err := a.keyWrapper.Wrap(
		secretKey,
		input.Password,
		keywrapDomain.AccountAuthKey(input.Username, input.Password),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to wrap secret key")
	}

	passwordHash, err := a.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &accountDomain.Account{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		PasswordHash: passwordHash,
		SecretKey:    wrapped,
		CreatedAt:    a.now().UTC(),
	}

	if err := a.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	a.logger.Info("account registered",
		slog.String("account_id", account.ID.String()),
		slog.String("username", account.Username),
	)
	return account, nil
}

func (a *accountUseCase) Authenticate(
	ctx context.Context,
	input *accountDomain.AuthenticateInput,
) (*accountDomain.AuthenticateOutput, error) {
	account, err := a.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			a.passwordService.CompareDummy(input.Password)
			return nil, accountDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Compare(input.Password, account.PasswordHash) {
		return nil, accountDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	token := &accountDomain.AuthToken{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		AccountID: account.ID,
		ExpiresAt: now.Add(a.tokenExpiration),
		CreatedAt: now,
	}

	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &accountDomain.AuthenticateOutput{
		Account:    account,
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

func (a *accountUseCase) AuthenticateToken(
	ctx context.Context,
	plainToken string,
) (*accountDomain.Principal, error) {
	if plainToken == "" {
		return nil, accountDomain.ErrTokenInactive
	}

	token, err := a.tokenRepo.GetByTokenHash(ctx, a.tokenService.HashToken(plainToken))
	if err != nil {
		if errors.Is(err, accountDomain.ErrTokenNotFound) {
			return nil, accountDomain.ErrTokenInactive
		}
		return nil, err
	}

	if !token.IsActive(a.now().UTC()) {
		return nil, accountDomain.ErrTokenInactive
	}

	account, err := a.accountRepo.GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, accountDomain.ErrAccountNotFound) {
			return nil, accountDomain.ErrTokenInactive
		}
		return nil, err
	}

	return &accountDomain.Principal{Account: account, Token: token}, nil
}

func (a *accountUseCase) CleanupExpiredTokens(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")
	}

	cutoff := a.now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return a.tokenRepo.CountExpired(ctx, cutoff)
	}
	return a.tokenRepo.DeleteExpired(ctx, cutoff)
}

// NewAccountUseCase creates an AccountUseCase. Auth tokens live for tokenExpiration.
func NewAccountUseCase(
	accountRepo AccountRepository,
	tokenRepo AuthTokenRepository,
	passwordService accountService.PasswordService,
	tokenService accountService.TokenService,
	secretKeyGenerator accountService.SecretKeyGenerator,
	keyWrapper keywrapService.KeyWrapper,
	tokenExpiration time.Duration,
	logger *slog.Logger,
) AccountUseCase {
	return &accountUseCase{
		accountRepo:        accountRepo,
		tokenRepo:          tokenRepo,
		passwordService:    passwordService,
		tokenService:       tokenService,
		secretKeyGenerator: secretKeyGenerator,
		keyWrapper:         keyWrapper,
		tokenExpiration:    tokenExpiration,
		logger:             logger,
		now:                time.Now,
	}
}
