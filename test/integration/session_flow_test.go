// Package integration runs the Auth Backend and the client Session Key Manager together
// against real PostgreSQL and MySQL databases. Tests skip when a database is unreachable.
package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/notekeeper/internal/app"
	"github.com/allisson/notekeeper/internal/config"
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
	sessionUseCase "github.com/allisson/notekeeper/internal/session/usecase"
	"github.com/allisson/notekeeper/internal/testutil"
)

var drivers = []string{"postgres", "mysql"}

// flowContext holds a running Auth Backend and the client configuration pointing at it.
type flowContext struct {
	server    *app.Container
	clientCfg config.Config
}

func setupFlow(t *testing.T, driver string) *flowContext {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	testutil.SetupDB(t, driver)

	serverCfg := &config.Config{
		DBDriver:             driver,
		DBConnectionString:   testutil.DSN(driver),
		DBMaxOpenConnections: 5,
		DBMaxIdleConnections: 2,
		DBConnMaxLifetime:    time.Minute,
		LogLevel:             "error",
		AuthTokenExpiration:  time.Hour,
		KDFIterations:        1000,
		KDFAlgorithm:         string(keywrapDomain.AESGCM),
	}
	server := app.NewContainer(ctx, serverCfg)
	t.Cleanup(func() { assert.NoError(t, server.Shutdown(context.Background())) })

	httpServer, err := server.HTTPServer()
	require.NoError(t, err)

	ts := httptest.NewServer(httpServer.GetHandler())
	t.Cleanup(ts.Close)

	return &flowContext{
		server: server,
		clientCfg: config.Config{
			LogLevel:              "error",
			KDFIterations:         1000,
			KDFAlgorithm:          string(keywrapDomain.ChaCha20),
			APIBaseURL:            ts.URL + "/api",
			HTTPClientTimeout:     5 * time.Second,
			SessionStorePath:      filepath.Join(t.TempDir(), "session.json"),
			SessionRevokeOnLogout: true,
		},
	}
}

// newClient returns the Session Key Manager of a fresh client process. Every client of a
// flow shares the same session file.
func (f *flowContext) newClient(t *testing.T) sessionUseCase.SessionManager {
	t.Helper()

	cfg := f.clientCfg
	container := app.NewContainer(context.Background(), &cfg)
	t.Cleanup(func() { assert.NoError(t, container.Shutdown(context.Background())) })

	manager, err := container.SessionManager()
	require.NoError(t, err)
	return manager
}

func (f *flowContext) countSessions(t *testing.T, where string) int {
	t.Helper()

	db, err := f.server.DB()
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM key_sessions "+where).Scan(&count))
	return count
}

func TestSessionFlow(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			flow := setupFlow(t, driver)
			ctx := context.Background()
			credential := sessionDomain.Credential{Username: "alice", Password: "correct horse 42"}

			first := flow.newClient(t)
			require.NoError(t, first.Register(ctx, credential))

			login := first.Login(ctx, credential)
			require.Equal(t, sessionDomain.StatusAuthenticated, login.Status, login.Error)
			assert.Len(t, login.SecretKey, keywrapDomain.SecretKeyLength)
			assert.Equal(t, "alice", login.UserID)
			assert.True(t, login.ExpiresOn.After(time.Now()))
			assert.Equal(t, 1, flow.countSessions(t, "WHERE revoked_at IS NULL"))

			// A new process resumes without the password and unlocks the same key.
			resumed := flow.newClient(t).Resume(ctx)
			require.Equal(t, sessionDomain.StatusAuthenticated, resumed.Status, resumed.Error)
			assert.Equal(t, login.SecretKey, resumed.SecretKey)
			assert.Equal(t, login.UserID, resumed.UserID)

			// Logout revokes the key session server side and clears the session file.
			flow.newClient(t).Logout(ctx)
			assert.Equal(t, 1, flow.countSessions(t, "WHERE revoked_at IS NOT NULL"))

			idle := flow.newClient(t).Resume(ctx)
			assert.Equal(t, sessionDomain.StatusIdle, idle.Status)
			assert.Empty(t, idle.SecretKey)

			keySessionUseCase, err := flow.server.KeySessionUseCase()
			require.NoError(t, err)
			count, err := keySessionUseCase.CleanupExpired(ctx, 0, false)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
			assert.Equal(t, 0, flow.countSessions(t, ""))
		})
	}
}

func TestSessionFlow_Rejections(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			flow := setupFlow(t, driver)
			ctx := context.Background()
			credential := sessionDomain.Credential{Username: "bob", Password: "correct horse 42"}

			client := flow.newClient(t)
			require.NoError(t, client.Register(ctx, credential))

			err := client.Register(ctx, credential)
			var rejected *sessionDomain.AuthRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, 409, rejected.StatusCode)

			failed := client.Login(ctx, sessionDomain.Credential{Username: "bob", Password: "wrong password 1"})
			assert.Equal(t, sessionDomain.StatusFailed, failed.Status)
			assert.Empty(t, failed.SecretKey)
			require.ErrorAs(t, failed.Err, &rejected)
			assert.Equal(t, 401, rejected.StatusCode)
			assert.Equal(t, 0, flow.countSessions(t, ""))

			idle := flow.newClient(t).Resume(ctx)
			assert.Equal(t, sessionDomain.StatusIdle, idle.Status)
		})
	}
}
