package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
	"github.com/allisson/notekeeper/internal/metrics"
)

type keySessionUseCaseWithMetrics struct {
	next    KeySessionUseCase
	metrics metrics.BusinessMetrics
}

// NewKeySessionUseCaseWithMetrics wraps a KeySessionUseCase with metrics recording.
func NewKeySessionUseCaseWithMetrics(useCase KeySessionUseCase, m metrics.BusinessMetrics) KeySessionUseCase {
	return &keySessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (k *keySessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	k.metrics.RecordOperation(ctx, metrics.DomainKeySession, operation, status)
	k.metrics.RecordDuration(ctx, metrics.DomainKeySession, operation, time.Since(start), status)
}

func (k *keySessionUseCaseWithMetrics) Create(
	ctx context.Context,
	principal *accountDomain.Principal,
	input *keysessionDomain.CreateInput,
) (*keysessionDomain.KeySession, error) {
	start := time.Now()
	session, err := k.next.Create(ctx, principal, input)
	k.record(ctx, "create", start, err)
	return session, err
}

func (k *keySessionUseCaseWithMetrics) Fetch(
	ctx context.Context,
	input *keysessionDomain.LookupInput,
) (string, error) {
	start := time.Now()
	wire, err := k.next.Fetch(ctx, input)
	k.record(ctx, "fetch", start, err)
	return wire, err
}

func (k *keySessionUseCaseWithMetrics) Revoke(ctx context.Context, input *keysessionDomain.LookupInput) error {
	start := time.Now()
	err := k.next.Revoke(ctx, input)
	k.record(ctx, "revoke", start, err)
	return err
}

func (k *keySessionUseCaseWithMetrics) List(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*keysessionDomain.KeySession, error) {
	start := time.Now()
	sessions, err := k.next.List(ctx, accountID, offset, limit)
	k.record(ctx, "list", start, err)
	return sessions, err
}

func (k *keySessionUseCaseWithMetrics) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := k.next.CleanupExpired(ctx, days, dryRun)
	k.record(ctx, "cleanup_expired", start, err)
	return count, err
}
