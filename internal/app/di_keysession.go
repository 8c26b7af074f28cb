package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/allisson/notekeeper/internal/database"
	keysessionHTTP "github.com/allisson/notekeeper/internal/keysession/http"
	keysessionRepository "github.com/allisson/notekeeper/internal/keysession/repository"
	keysessionMySQL "github.com/allisson/notekeeper/internal/keysession/repository/mysql"
	keysessionService "github.com/allisson/notekeeper/internal/keysession/service"
	keysessionUseCase "github.com/allisson/notekeeper/internal/keysession/usecase"
)

// Sealer returns the at-rest sealer for stored key sessions. Without KMS_KEY_URI the
// values are stored as received.
func (c *Container) Sealer() (keysessionService.Sealer, error) {
	err := c.initOnce(&c.sealerInit, "sealer", func() error {
		if c.config.KMSKeyURI == "" {
			c.Logger().Warn("KMS_KEY_URI not set, key sessions are stored without at-rest sealing")
			c.sealer = keysessionService.NewNoopSealer()
			return nil
		}

		keeper, err := keysessionService.OpenKeeper(c.ctx, c.config.KMSKeyURI)
		if err != nil {
			return err
		}
		c.Logger().Info("key session sealing enabled", slog.String("provider", keeperScheme(c.config.KMSKeyURI)))
		c.sealer = keysessionService.NewKeeperSealer(keeper)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.sealer, nil
}

// KeySessionRepository returns the key session repository for the configured driver.
func (c *Container) KeySessionRepository() (keysessionUseCase.KeySessionRepository, error) {
	err := c.initOnce(&c.keySessionRepositoryInit, "keySessionRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for key session repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.keySessionRepository = keysessionMySQL.NewMySQLKeySessionRepository(db)
		case database.DriverPostgres:
			c.keySessionRepository = keysessionRepository.NewPostgreSQLKeySessionRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keySessionRepository, nil
}

// KeySessionUseCase returns the key session use case, wrapped with metrics when enabled.
func (c *Container) KeySessionUseCase() (keysessionUseCase.KeySessionUseCase, error) {
	err := c.initOnce(&c.keySessionUseCaseInit, "keySessionUseCase", func() error {
		useCase, err := c.initKeySessionUseCase()
		c.keySessionUseCase = useCase
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.keySessionUseCase, nil
}

// KeySessionHandler returns the HTTP handler for the /session endpoints.
func (c *Container) KeySessionHandler() (*keysessionHTTP.KeySessionHandler, error) {
	err := c.initOnce(&c.keySessionHandlerInit, "keySessionHandler", func() error {
		useCase, err := c.KeySessionUseCase()
		if err != nil {
			return fmt.Errorf("failed to get key session use case for key session handler: %w", err)
		}
		c.keySessionHandler = keysessionHTTP.NewKeySessionHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keySessionHandler, nil
}

func (c *Container) initKeySessionUseCase() (keysessionUseCase.KeySessionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for key session use case: %w", err)
	}

	repo, err := c.KeySessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key session repository for key session use case: %w", err)
	}

	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for key session use case: %w", err)
	}

	baseUseCase := keysessionUseCase.NewKeySessionUseCase(txManager, repo, sealer, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for key session use case: %w", err)
		}
		return keysessionUseCase.NewKeySessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// keeperScheme returns the provider part of a keeper URI without the key material.
func keeperScheme(keyURI string) string {
	scheme, _, ok := strings.Cut(keyURI, "://")
	if !ok {
		return "unknown"
	}
	return scheme
}
