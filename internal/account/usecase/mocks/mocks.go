// Package mocks provides mock implementations of the account use case for handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
)

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) Register(
	ctx context.Context,
	input *accountDomain.RegisterInput,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountUseCase) Authenticate(
	ctx context.Context,
	input *accountDomain.AuthenticateInput,
) (*accountDomain.AuthenticateOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.AuthenticateOutput), args.Error(1)
}

func (m *MockAccountUseCase) AuthenticateToken(
	ctx context.Context,
	plainToken string,
) (*accountDomain.Principal, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Principal), args.Error(1)
}

func (m *MockAccountUseCase) CleanupExpiredTokens(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
