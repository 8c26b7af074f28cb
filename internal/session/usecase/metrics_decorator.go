package usecase

import (
	"context"
	"time"

	"github.com/allisson/notekeeper/internal/metrics"
	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// sessionManagerWithMetrics decorates SessionManager with metrics instrumentation.
type sessionManagerWithMetrics struct {
	next    SessionManager
	metrics metrics.BusinessMetrics
}

// NewSessionManagerWithMetrics wraps a SessionManager with metrics recording.
func NewSessionManagerWithMetrics(manager SessionManager, m metrics.BusinessMetrics) SessionManager {
	return &sessionManagerWithMetrics{
		next:    manager,
		metrics: m,
	}
}

func stateStatus(state sessionDomain.AuthState) string {
	return metrics.StatusOf(state.Err)
}

func (s *sessionManagerWithMetrics) record(ctx context.Context, operation string, start time.Time, status string) {
	s.metrics.RecordOperation(ctx, metrics.DomainSession, operation, status)
	s.metrics.RecordDuration(ctx, metrics.DomainSession, operation, time.Since(start), status)
}

// Login records metrics for login operations.
func (s *sessionManagerWithMetrics) Login(
	ctx context.Context,
	credential sessionDomain.Credential,
) sessionDomain.AuthState {
	start := time.Now()
	state := s.next.Login(ctx, credential)
	s.record(ctx, "login", start, stateStatus(state))
	return state
}

// Resume records metrics for resume operations.
func (s *sessionManagerWithMetrics) Resume(ctx context.Context) sessionDomain.AuthState {
	start := time.Now()
	state := s.next.Resume(ctx)
	s.record(ctx, "resume", start, stateStatus(state))
	return state
}

// Logout records metrics for logout operations.
func (s *sessionManagerWithMetrics) Logout(ctx context.Context) {
	start := time.Now()
	s.next.Logout(ctx)
	s.record(ctx, "logout", start, metrics.StatusSuccess)
}

// Register records metrics for registration operations.
func (s *sessionManagerWithMetrics) Register(ctx context.Context, credential sessionDomain.Credential) error {
	start := time.Now()
	err := s.next.Register(ctx, credential)
	s.record(ctx, "register", start, metrics.StatusOf(err))
	return err
}

func (s *sessionManagerWithMetrics) ClearError() {
	s.next.ClearError()
}

func (s *sessionManagerWithMetrics) State() sessionDomain.AuthState {
	return s.next.State()
}

func (s *sessionManagerWithMetrics) Subscribe(fn func(sessionDomain.AuthState)) func() {
	return s.next.Subscribe(fn)
}
