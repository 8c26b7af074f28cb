package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
	"github.com/allisson/notekeeper/internal/session/usecase"
	"github.com/allisson/notekeeper/internal/session/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "session", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "session", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSessionManagerWithMetrics(t *testing.T) {
	ctx := context.Background()
	credential := sessionDomain.Credential{Username: "user123", Password: "password"}

	t.Run("Login success", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		m := &mockBusinessMetrics{}
		manager := usecase.NewSessionManagerWithMetrics(next, m)

		want := sessionDomain.AuthState{Status: sessionDomain.StatusAuthenticated, UserID: "user123"}
		next.On("Login", ctx, credential).Return(want).Once()
		expectRecord(m, ctx, "login", "success")

		assert.Equal(t, want, manager.Login(ctx, credential))
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Login error", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		m := &mockBusinessMetrics{}
		manager := usecase.NewSessionManagerWithMetrics(next, m)

		next.On("Login", ctx, credential).
			Return(sessionDomain.AuthState{Status: sessionDomain.StatusFailed, Err: sessionDomain.ErrSecretTampered}).
			Once()
		expectRecord(m, ctx, "login", "error")

		manager.Login(ctx, credential)
		m.AssertExpectations(t)
	})

	t.Run("Resume logged out counts as success", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		m := &mockBusinessMetrics{}
		manager := usecase.NewSessionManagerWithMetrics(next, m)

		next.On("Resume", ctx).Return(sessionDomain.AuthState{Status: sessionDomain.StatusIdle}).Once()
		expectRecord(m, ctx, "resume", "success")

		manager.Resume(ctx)
		m.AssertExpectations(t)
	})

	t.Run("Logout", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		m := &mockBusinessMetrics{}
		manager := usecase.NewSessionManagerWithMetrics(next, m)

		next.On("Logout", ctx).Return().Once()
		expectRecord(m, ctx, "logout", "success")

		manager.Logout(ctx)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Register error", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		m := &mockBusinessMetrics{}
		manager := usecase.NewSessionManagerWithMetrics(next, m)

		next.On("Register", ctx, credential).Return(assert.AnError).Once()
		expectRecord(m, ctx, "register", "error")

		assert.ErrorIs(t, manager.Register(ctx, credential), assert.AnError)
		m.AssertExpectations(t)
	})

	t.Run("pass through", func(t *testing.T) {
		next := &mocks.MockSessionManager{}
		manager := usecase.NewSessionManagerWithMetrics(next, &mockBusinessMetrics{})

		state := sessionDomain.AuthState{Status: sessionDomain.StatusIdle}
		next.On("State").Return(state).Once()
		next.On("ClearError").Return().Once()
		next.On("Subscribe", mock.Anything).Return(func() {}).Once()

		assert.Equal(t, state, manager.State())
		manager.ClearError()
		manager.Subscribe(func(sessionDomain.AuthState) {})()
		next.AssertExpectations(t)
	})
}
