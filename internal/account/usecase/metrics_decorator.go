package usecase

import (
	"context"
	"time"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *accountUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	a.metrics.RecordOperation(ctx, metrics.DomainAccount, operation, status)
	a.metrics.RecordDuration(ctx, metrics.DomainAccount, operation, time.Since(start), status)
}

func (a *accountUseCaseWithMetrics) Register(
	ctx context.Context,
	input *accountDomain.RegisterInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Register(ctx, input)
	a.record(ctx, "register", start, err)
	return account, err
}

func (a *accountUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	input *accountDomain.AuthenticateInput,
) (*accountDomain.AuthenticateOutput, error) {
	start := time.Now()
	output, err := a.next.Authenticate(ctx, input)
	a.record(ctx, "authenticate", start, err)
	return output, err
}

func (a *accountUseCaseWithMetrics) AuthenticateToken(
	ctx context.Context,
	plainToken string,
) (*accountDomain.Principal, error) {
	start := time.Now()
	principal, err := a.next.AuthenticateToken(ctx, plainToken)
	a.record(ctx, "authenticate_token", start, err)
	return principal, err
}

func (a *accountUseCaseWithMetrics) CleanupExpiredTokens(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := a.next.CleanupExpiredTokens(ctx, days, dryRun)
	a.record(ctx, "cleanup_expired_tokens", start, err)
	return count, err
}
