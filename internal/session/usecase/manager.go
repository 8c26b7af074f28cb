package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/allisson/notekeeper/internal/errors"
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
	keywrapService "github.com/allisson/notekeeper/internal/keywrap/service"
	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

const resumeFlightKey = "resume"

// sessionManager implements SessionManager.
//
// mu serializes every commit to the Session Store and the state container (login and
// resume success, logout, expiry) and guards the timer generation. Network calls never
// run under mu.
type sessionManager struct {
	backend        AuthBackend
	store          SessionStore
	wrapper        keywrapService.KeyWrapper
	deriver        keywrapService.KeyDeriver
	clock          Clock
	logger         *slog.Logger
	revokeOnLogout bool
	newSessionID   func() string

	state  *StateStore
	flight singleflight.Group

	mu         sync.Mutex
	timer      Timer
	generation uint64
}

// NewSessionManager creates a SessionManager. When revokeOnLogout is set, Logout asks the
// Auth Backend to revoke the key session before clearing local metadata.
func NewSessionManager(
	backend AuthBackend,
	store SessionStore,
	wrapper keywrapService.KeyWrapper,
	deriver keywrapService.KeyDeriver,
	clock Clock,
	logger *slog.Logger,
	revokeOnLogout bool,
) SessionManager {
	return &sessionManager{
		backend:        backend,
		store:          store,
		wrapper:        wrapper,
		deriver:        deriver,
		clock:          clock,
		logger:         logger,
		revokeOnLogout: revokeOnLogout,
		newSessionID:   uuid.NewString,
		state:          NewStateStore(),
	}
}

// Login collapses concurrent calls with the same credentials into one flight, so a
// double submit registers a single key session.
func (m *sessionManager) Login(ctx context.Context, credential sessionDomain.Credential) sessionDomain.AuthState {
	digest := sha256.Sum256([]byte(credential.Password))
	key := "login:" + credential.Username + ":" + hex.EncodeToString(digest[:])

	v, _, _ := m.flight.Do(key, func() (any, error) {
		return m.login(ctx, credential), nil
	})
	return v.(sessionDomain.AuthState)
}

func (m *sessionManager) login(ctx context.Context, credential sessionDomain.Credential) sessionDomain.AuthState {
	m.endSession(ctx)
	m.state.Dispatch(Action{Type: ActionStart})

	result, err := m.backend.Authenticate(ctx, credential)
	if err != nil {
		return m.fail("authenticate", err)
	}

	if result == nil || result.ExpiresOn == 0 || result.UserID == "" || result.SecretKey == "" {
		return m.fail("authenticate", sessionDomain.ErrMissingCredentials)
	}

	secretKey, err := m.wrapper.Unwrap(
		result.SecretKey,
		credential.Password,
		keywrapDomain.AccountAuthKey(credential.Username, credential.Password),
	)
	if err != nil {
		m.logger.Warn("account secret key failed verification",
			slog.String("user_id", result.UserID),
			slog.Any("error", err),
		)
		return m.fail("unwrap secret key", fmt.Errorf("%w: %w", sessionDomain.ErrSecretTampered, err))
	}
	if len(secretKey) != keywrapDomain.SecretKeyLength {
		return m.fail("unwrap secret key", sessionDomain.ErrInvalidSecretKey)
	}

	now := m.clock.Now()
	sessionKey, err := m.deriver.DeriveSessionKey(credential.Username, credential.Password, now)
	if err != nil {
		return m.fail("derive session key", err)
	}

	sessionID := m.newSessionID()
	sessionSecretKey, err := m.wrapper.Wrap(secretKey+sessionID, sessionKey, sessionKey)
	if err != nil {
		return m.fail("wrap session key", err)
	}

	if err := m.backend.CreateSession(ctx, result.UserID, sessionSecretKey, sessionID); err != nil {
		return m.fail("create session", err)
	}

	meta := sessionDomain.SessionMetadata{
		UserID:     result.UserID,
		ExpiresOn:  time.Unix(result.ExpiresOn, 0),
		SessionKey: sessionKey,
		SessionID:  sessionID,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := saveMetadata(m.store, meta, m.logger); err != nil {
		return m.fail("persist session", err)
	}

	state := m.state.Dispatch(Action{
		Type:      ActionSuccess,
		UserID:    meta.UserID,
		SecretKey: secretKey,
		ExpiresOn: meta.ExpiresOn,
	})
	m.armTimerLocked(meta.ExpiresOn)

	m.logger.Info("logged in",
		slog.String("user_id", meta.UserID),
		slog.String("session_id", sessionID),
	)
	return state
}

// Resume collapses concurrent calls into one flight.
func (m *sessionManager) Resume(ctx context.Context) sessionDomain.AuthState {
	v, _, _ := m.flight.Do(resumeFlightKey, func() (any, error) {
		return m.resume(ctx), nil
	})
	return v.(sessionDomain.AuthState)
}

func (m *sessionManager) resume(ctx context.Context) sessionDomain.AuthState {
	meta, complete, err := loadMetadata(m.store)
	if err != nil {
		return m.fail("read session", err)
	}

	if !complete || meta.Expired(m.clock.Now()) {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.stopTimerLocked()
		clearMetadata(m.store, m.logger)
		return m.state.Dispatch(Action{Type: ActionLogout})
	}

	m.state.Dispatch(Action{Type: ActionStart})

	wire, err := m.backend.FetchSession(ctx, meta.UserID, meta.SessionID)
	if err != nil {
		return m.fail("fetch session", err)
	}

	secretKey, err := m.unwrapSession(wire, meta)
	if err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.stopTimerLocked()
		clearMetadata(m.store, m.logger)
		return m.fail("unwrap session key", fmt.Errorf("%w: %w", sessionDomain.ErrKeyTampered, err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.state.Dispatch(Action{
		Type:      ActionSuccess,
		UserID:    meta.UserID,
		SecretKey: secretKey,
		ExpiresOn: meta.ExpiresOn,
	})
	m.armTimerLocked(meta.ExpiresOn)

	m.logger.Info("session resumed",
		slog.String("user_id", meta.UserID),
		slog.String("session_id", meta.SessionID),
	)
	return state
}

// unwrapSession verifies and opens a session-wrapped Secret Key. The plaintext must be
// the Secret Key followed by the session id it was registered under.
func (m *sessionManager) unwrapSession(wire string, meta sessionDomain.SessionMetadata) (string, error) {
	plaintext, err := m.wrapper.Unwrap(wire, meta.SessionKey, meta.SessionKey)
	if err != nil {
		m.logger.Warn("session secret key failed verification",
			slog.String("user_id", meta.UserID),
			slog.String("session_id", meta.SessionID),
			slog.Any("error", err),
		)
		return "", err
	}

	if len(plaintext) != keywrapDomain.SecretKeyLength+len(meta.SessionID) ||
		!strings.HasSuffix(plaintext, meta.SessionID) {
		m.logger.Warn("session secret key has unexpected layout",
			slog.String("user_id", meta.UserID),
			slog.String("session_id", meta.SessionID),
		)
		return "", sessionDomain.ErrInvalidSecretKey
	}

	return plaintext[:keywrapDomain.SecretKeyLength], nil
}

func (m *sessionManager) Logout(ctx context.Context) {
	m.endSession(ctx)
	m.state.Dispatch(Action{Type: ActionLogout})
}

// endSession revokes (when enabled) and forgets the current key session. Login calls it
// first, so a failed login never leaves the previous session armed or resumable.
func (m *sessionManager) endSession(ctx context.Context) {
	if m.revokeOnLogout {
		m.revoke(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimerLocked()
	clearMetadata(m.store, m.logger)
}

// revoke is best-effort: failures are logged and never block the local logout.
func (m *sessionManager) revoke(ctx context.Context) {
	meta, complete, err := loadMetadata(m.store)
	if err != nil || !complete {
		return
	}

	if err := m.backend.RevokeSession(ctx, meta.UserID, meta.SessionID); err != nil {
		m.logger.Warn("failed to revoke session",
			slog.String("user_id", meta.UserID),
			slog.String("session_id", meta.SessionID),
			slog.Any("error", err),
		)
	}
}

func (m *sessionManager) Register(ctx context.Context, credential sessionDomain.Credential) error {
	userID, err := m.backend.Register(ctx, credential.Username, credential.Password)
	if err != nil {
		return errors.Wrap(err, "failed to register account")
	}

	m.logger.Info("account registered", slog.String("user_id", userID))
	return nil
}

func (m *sessionManager) ClearError() {
	m.state.Dispatch(Action{Type: ActionErrorReset})
}

func (m *sessionManager) State() sessionDomain.AuthState {
	return m.state.State()
}

func (m *sessionManager) Subscribe(fn func(sessionDomain.AuthState)) func() {
	return m.state.Subscribe(fn)
}

func (m *sessionManager) fail(op string, err error) sessionDomain.AuthState {
	m.logger.Error("session operation failed",
		slog.String("operation", op),
		slog.Any("error", err),
	)
	return m.state.Dispatch(Action{Type: ActionFailed, Err: err})
}

// armTimerLocked replaces any running expiry timer. The generation captured by the
// callback keeps a stale timer from ending a newer session.
func (m *sessionManager) armTimerLocked(expiresOn time.Time) {
	m.stopTimerLocked()

	generation := m.generation
	m.timer = m.clock.AfterFunc(expiresOn.Sub(m.clock.Now()), func() {
		m.expire(generation)
	})
}

func (m *sessionManager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
}

func (m *sessionManager) expire(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		return
	}

	m.stopTimerLocked()
	clearMetadata(m.store, m.logger)
	m.state.Dispatch(Action{Type: ActionLogout})
	m.logger.Info("session expired")
}
