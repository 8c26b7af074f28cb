// Package app provides the dependency injection container that assembles the Auth
// Backend server and the client-side Session Key Manager.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	accountHTTP "github.com/allisson/notekeeper/internal/account/http"
	accountService "github.com/allisson/notekeeper/internal/account/service"
	accountUseCase "github.com/allisson/notekeeper/internal/account/usecase"
	"github.com/allisson/notekeeper/internal/config"
	"github.com/allisson/notekeeper/internal/database"
	"github.com/allisson/notekeeper/internal/http"
	keysessionHTTP "github.com/allisson/notekeeper/internal/keysession/http"
	keysessionService "github.com/allisson/notekeeper/internal/keysession/service"
	keysessionUseCase "github.com/allisson/notekeeper/internal/keysession/usecase"
	keywrapService "github.com/allisson/notekeeper/internal/keywrap/service"
	"github.com/allisson/notekeeper/internal/metrics"
	sessionUseCase "github.com/allisson/notekeeper/internal/session/usecase"
)

// Container holds application dependencies. Components are created on first access.
type Container struct {
	config *config.Config
	ctx    context.Context

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Key wrapping
	keyWrapper keywrapService.KeyWrapper

	// Accounts
	accountRepository   accountUseCase.AccountRepository
	authTokenRepository accountUseCase.AuthTokenRepository
	passwordService     accountService.PasswordService
	accountUseCase      accountUseCase.AccountUseCase
	accountHandler      *accountHTTP.AccountHandler

	// Key sessions
	sealer               keysessionService.Sealer
	keySessionRepository keysessionUseCase.KeySessionRepository
	keySessionUseCase    keysessionUseCase.KeySessionUseCase
	keySessionHandler    *keysessionHTTP.KeySessionHandler

	// Client
	sessionManager sessionUseCase.SessionManager

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	txManagerInit            sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	keyWrapperInit           sync.Once
	accountRepositoryInit    sync.Once
	authTokenRepositoryInit  sync.Once
	passwordServiceInit      sync.Once
	accountUseCaseInit       sync.Once
	accountHandlerInit       sync.Once
	sealerInit               sync.Once
	keySessionRepositoryInit sync.Once
	keySessionUseCaseInit    sync.Once
	keySessionHandlerInit    sync.Once
	sessionManagerInit       sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container. ctx bounds background
// work started by components, such as the rate limiter sweeper.
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		ctx:        ctx,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// initOnce runs init under once and records its error under name, so later calls keep
// returning the first failure.
func (c *Container) initOnce(once *sync.Once, name string, init func() error) error {
	once.Do(func() {
		if err := init(); err != nil {
			c.mu.Lock()
			c.initErrors[name] = err
			c.mu.Unlock()
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	err := c.initOnce(&c.dbInit, "db", func() error {
		db, err := c.initDB()
		c.db = db
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	err := c.initOnce(&c.txManagerInit, "txManager", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		c.txManager = database.NewTxManager(db)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	err := c.initOnce(&c.metricsProviderInit, "metricsProvider", func() error {
		if !c.config.MetricsEnabled {
			return nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create metrics provider: %w", err)
		}
		c.metricsProvider = provider
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	err := c.initOnce(&c.businessMetricsInit, "businessMetrics", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return nil
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create business metrics: %w", err)
		}
		c.businessMetrics = businessMetrics
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the Auth Backend HTTP server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	err := c.initOnce(&c.httpServerInit, "httpServer", func() error {
		server, err := c.initHTTPServer()
		c.httpServer = server
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	err := c.initOnce(&c.metricsServerInit, "metricsServer", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			return nil
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown releases every initialized resource. Servers are stopped by their callers.
func (c *Container) Shutdown(ctx context.Context) error {
	var shutdownErrors []error

	if c.sealer != nil {
		if err := c.sealer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("sealer close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	accountHandler, err := c.AccountHandler()
	if err != nil {
		return nil, err
	}

	keySessionHandler, err := c.KeySessionHandler()
	if err != nil {
		return nil, err
	}

	accountUseCase, err := c.AccountUseCase()
	if err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.ctx, c.config, accountHandler, keySessionHandler, accountUseCase, provider)
	return server, nil
}
