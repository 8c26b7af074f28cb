package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
	sessionMocks "github.com/allisson/notekeeper/internal/session/usecase/mocks"
)

const testSecretKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newSessionDeps(input string) (SessionDeps, *sessionMocks.MockSessionManager, *bytes.Buffer) {
	manager := &sessionMocks.MockSessionManager{}
	out := &bytes.Buffer{}
	return SessionDeps{
		Manager: manager,
		Logger:  slog.New(slog.DiscardHandler),
		IO:      IOTuple{Reader: strings.NewReader(input), Writer: out},
	}, manager, out
}

func authenticatedState() sessionDomain.AuthState {
	return sessionDomain.AuthState{
		Status:    sessionDomain.StatusAuthenticated,
		UserID:    "user-1",
		SecretKey: testSecretKey,
		ExpiresOn: time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRunRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps, manager, out := newSessionDeps("hunter2\n")
		manager.On("Register", ctx, sessionDomain.Credential{Username: "alice", Password: "hunter2"}).
			Return(nil)

		require.NoError(t, RunRegister(ctx, deps, "alice"))
		assert.Equal(t, "Account alice registered\n", out.String())
		manager.AssertExpectations(t)
	})

	t.Run("rejected", func(t *testing.T) {
		deps, manager, out := newSessionDeps("hunter2\n")
		rejected := &sessionDomain.AuthRejectedError{StatusCode: 409, Message: "Username already taken"}
		manager.On("Register", ctx, mock.Anything).Return(rejected)

		err := RunRegister(ctx, deps, "alice")

		require.ErrorIs(t, err, rejected)
		assert.Contains(t, out.String(), "Error: Username already taken")
	})

	t.Run("missing-password", func(t *testing.T) {
		deps, manager, _ := newSessionDeps("")

		err := RunRegister(ctx, deps, "alice")

		require.Error(t, err)
		manager.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestRunLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		deps, manager, out := newSessionDeps("hunter2\n")
		manager.On("Login", ctx, sessionDomain.Credential{Username: "alice", Password: "hunter2"}).
			Return(authenticatedState())

		require.NoError(t, RunLogin(ctx, deps, "alice", "text"))

		assert.Contains(t, out.String(), "Status: authenticated")
		assert.Contains(t, out.String(), "User ID: user-1")
		assert.Contains(t, out.String(), "Expires On: 2030-01-02T03:04:05Z")
		assert.NotContains(t, out.String(), testSecretKey)
	})

	t.Run("json", func(t *testing.T) {
		deps, manager, out := newSessionDeps("hunter2\n")
		manager.On("Login", ctx, mock.Anything).Return(authenticatedState())

		require.NoError(t, RunLogin(ctx, deps, "alice", "json"))

		var got stateOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, stateOutput{
			Status:    "authenticated",
			UserID:    "user-1",
			ExpiresOn: "2030-01-02T03:04:05Z",
		}, got)
		assert.NotContains(t, out.String(), testSecretKey)
	})

	t.Run("failed", func(t *testing.T) {
		deps, manager, out := newSessionDeps("wrong\n")
		manager.On("Login", ctx, mock.Anything).Return(sessionDomain.AuthState{
			Status: sessionDomain.StatusFailed,
			Error:  sessionDomain.MessageSecretTampered,
			Err:    sessionDomain.ErrSecretTampered,
		})

		err := RunLogin(ctx, deps, "alice", "text")

		require.ErrorIs(t, err, sessionDomain.ErrSecretTampered)
		assert.Contains(t, out.String(), "Error: WARNING: Secret tampered!")
	})

	t.Run("invalid-format", func(t *testing.T) {
		deps, manager, _ := newSessionDeps("hunter2\n")

		require.Error(t, RunLogin(ctx, deps, "alice", "xml"))
		manager.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestRunStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated", func(t *testing.T) {
		deps, manager, out := newSessionDeps("")
		manager.On("Resume", ctx).Return(authenticatedState())

		require.NoError(t, RunStatus(ctx, deps, "text"))
		assert.Contains(t, out.String(), "Status: authenticated")
		assert.NotContains(t, out.String(), testSecretKey)
	})

	t.Run("idle", func(t *testing.T) {
		deps, manager, out := newSessionDeps("")
		manager.On("Resume", ctx).Return(sessionDomain.AuthState{Status: sessionDomain.StatusIdle})

		require.NoError(t, RunStatus(ctx, deps, "json"))
		assert.JSONEq(t, `{"status":"idle"}`, out.String())
	})

	t.Run("key-tampered", func(t *testing.T) {
		deps, manager, _ := newSessionDeps("")
		manager.On("Resume", ctx).Return(sessionDomain.AuthState{
			Status: sessionDomain.StatusFailed,
			Error:  sessionDomain.MessageKeyTampered,
			Err:    sessionDomain.ErrKeyTampered,
		})

		require.ErrorIs(t, RunStatus(ctx, deps, "text"), sessionDomain.ErrKeyTampered)
	})
}

func TestRunLogout(t *testing.T) {
	ctx := context.Background()
	deps, manager, out := newSessionDeps("")
	manager.On("Logout", ctx).Return()

	require.NoError(t, RunLogout(ctx, deps))
	assert.Equal(t, "Logged out\n", out.String())
	manager.AssertExpectations(t)
}

func TestLoginError(t *testing.T) {
	assert.EqualError(t, loginError(sessionDomain.AuthState{Error: "boom"}), "boom")
	assert.EqualError(
		t,
		loginError(sessionDomain.AuthState{Status: sessionDomain.StatusIdle}),
		"unexpected session status: idle",
	)
}
