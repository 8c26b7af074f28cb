// Package mocks provides mock implementations of the session use case collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// MockAuthBackend is a mock implementation of AuthBackend.
type MockAuthBackend struct {
	mock.Mock
}

// Register mocks the Register method of AuthBackend.
func (m *MockAuthBackend) Register(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// Authenticate mocks the Authenticate method of AuthBackend.
func (m *MockAuthBackend) Authenticate(
	ctx context.Context,
	credential sessionDomain.Credential,
) (*sessionDomain.AuthenticateResult, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.AuthenticateResult), args.Error(1)
}

// CreateSession mocks the CreateSession method of AuthBackend.
func (m *MockAuthBackend) CreateSession(ctx context.Context, username, sessionSecretKey, keyID string) error {
	args := m.Called(ctx, username, sessionSecretKey, keyID)
	return args.Error(0)
}

// FetchSession mocks the FetchSession method of AuthBackend.
func (m *MockAuthBackend) FetchSession(ctx context.Context, username, keyID string) (string, error) {
	args := m.Called(ctx, username, keyID)
	return args.String(0), args.Error(1)
}

// RevokeSession mocks the RevokeSession method of AuthBackend.
func (m *MockAuthBackend) RevokeSession(ctx context.Context, username, keyID string) error {
	args := m.Called(ctx, username, keyID)
	return args.Error(0)
}

// MockSessionManager is a mock implementation of SessionManager.
type MockSessionManager struct {
	mock.Mock
}

// Login mocks the Login method of SessionManager.
func (m *MockSessionManager) Login(
	ctx context.Context,
	credential sessionDomain.Credential,
) sessionDomain.AuthState {
	args := m.Called(ctx, credential)
	return args.Get(0).(sessionDomain.AuthState)
}

// Resume mocks the Resume method of SessionManager.
func (m *MockSessionManager) Resume(ctx context.Context) sessionDomain.AuthState {
	args := m.Called(ctx)
	return args.Get(0).(sessionDomain.AuthState)
}

// Logout mocks the Logout method of SessionManager.
func (m *MockSessionManager) Logout(ctx context.Context) {
	m.Called(ctx)
}

// Register mocks the Register method of SessionManager.
func (m *MockSessionManager) Register(ctx context.Context, credential sessionDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// ClearError mocks the ClearError method of SessionManager.
func (m *MockSessionManager) ClearError() {
	m.Called()
}

// State mocks the State method of SessionManager.
func (m *MockSessionManager) State() sessionDomain.AuthState {
	args := m.Called()
	return args.Get(0).(sessionDomain.AuthState)
}

// Subscribe mocks the Subscribe method of SessionManager.
func (m *MockSessionManager) Subscribe(fn func(sessionDomain.AuthState)) func() {
	args := m.Called(fn)
	return args.Get(0).(func())
}
