package app

import (
	"fmt"

	keywrapService "github.com/allisson/notekeeper/internal/keywrap/service"
	"github.com/allisson/notekeeper/internal/session/backend"
	"github.com/allisson/notekeeper/internal/session/store"
	sessionUseCase "github.com/allisson/notekeeper/internal/session/usecase"
)

// SessionManager returns the client-side Session Key Manager talking to API_BASE_URL and
// persisting metadata in SESSION_STORE_PATH.
func (c *Container) SessionManager() (sessionUseCase.SessionManager, error) {
	err := c.initOnce(&c.sessionManagerInit, "sessionManager", func() error {
		manager, err := c.initSessionManager()
		c.sessionManager = manager
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.sessionManager, nil
}

func (c *Container) initSessionManager() (sessionUseCase.SessionManager, error) {
	client, err := backend.NewClient(c.config.APIBaseURL, c.config.HTTPClientTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth backend client: %w", err)
	}

	wrapper, err := c.KeyWrapper()
	if err != nil {
		return nil, err
	}

	manager := sessionUseCase.NewSessionManager(
		client,
		store.NewFileStore(c.config.SessionStorePath),
		wrapper,
		keywrapService.NewPBKDF2KeyDeriver(c.config.KDFIterations),
		sessionUseCase.NewRealClock(),
		c.Logger(),
		c.config.SessionRevokeOnLogout,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session manager: %w", err)
		}
		return sessionUseCase.NewSessionManagerWithMetrics(manager, businessMetrics), nil
	}

	return manager, nil
}
