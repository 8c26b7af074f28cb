// Package mocks provides mock implementations of the key session use case for handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
)

// MockKeySessionUseCase is a mock implementation of KeySessionUseCase.
type MockKeySessionUseCase struct {
	mock.Mock
}

func (m *MockKeySessionUseCase) Create(
	ctx context.Context,
	principal *accountDomain.Principal,
	input *keysessionDomain.CreateInput,
) (*keysessionDomain.KeySession, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysessionDomain.KeySession), args.Error(1)
}

func (m *MockKeySessionUseCase) Fetch(ctx context.Context, input *keysessionDomain.LookupInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockKeySessionUseCase) Revoke(ctx context.Context, input *keysessionDomain.LookupInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockKeySessionUseCase) List(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*keysessionDomain.KeySession, error) {
	args := m.Called(ctx, accountID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keysessionDomain.KeySession), args.Error(1)
}

func (m *MockKeySessionUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
