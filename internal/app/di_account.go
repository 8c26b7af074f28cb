package app

import (
	"fmt"

	accountHTTP "github.com/allisson/notekeeper/internal/account/http"
	accountRepository "github.com/allisson/notekeeper/internal/account/repository"
	accountMySQL "github.com/allisson/notekeeper/internal/account/repository/mysql"
	accountService "github.com/allisson/notekeeper/internal/account/service"
	accountUseCase "github.com/allisson/notekeeper/internal/account/usecase"
	"github.com/allisson/notekeeper/internal/database"
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
	keywrapService "github.com/allisson/notekeeper/internal/keywrap/service"
)

// KeyWrapper returns the wrapper for account-level and session-level Secret Key wraps.
func (c *Container) KeyWrapper() (keywrapService.KeyWrapper, error) {
	err := c.initOnce(&c.keyWrapperInit, "keyWrapper", func() error {
		alg, err := keywrapDomain.ParseAlgorithm(c.config.KDFAlgorithm)
		if err != nil {
			return fmt.Errorf("invalid KDF_ALGORITHM %q: %w", c.config.KDFAlgorithm, err)
		}
		if err := keywrapDomain.ValidateKDFIterations(c.config.KDFIterations); err != nil {
			return fmt.Errorf("invalid KDF_ITERATIONS %d: %w", c.config.KDFIterations, err)
		}

		cipher := keywrapService.NewPassphraseCipher(keywrapService.NewAEADManager(), alg, c.config.KDFIterations)
		c.keyWrapper = keywrapService.NewKeyWrapper(cipher, keywrapService.NewHMACSigner())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keyWrapper, nil
}

// AccountRepository returns the account repository for the configured driver.
func (c *Container) AccountRepository() (accountUseCase.AccountRepository, error) {
	err := c.initOnce(&c.accountRepositoryInit, "accountRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for account repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.accountRepository = accountMySQL.NewMySQLAccountRepository(db)
		case database.DriverPostgres:
			c.accountRepository = accountRepository.NewPostgreSQLAccountRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.accountRepository, nil
}

// AuthTokenRepository returns the auth token repository for the configured driver.
func (c *Container) AuthTokenRepository() (accountUseCase.AuthTokenRepository, error) {
	err := c.initOnce(&c.authTokenRepositoryInit, "authTokenRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for auth token repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.authTokenRepository = accountMySQL.NewMySQLAuthTokenRepository(db)
		case database.DriverPostgres:
			c.authTokenRepository = accountRepository.NewPostgreSQLAuthTokenRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.authTokenRepository, nil
}

// PasswordService returns the Argon2id password hasher.
func (c *Container) PasswordService() (accountService.PasswordService, error) {
	err := c.initOnce(&c.passwordServiceInit, "passwordService", func() error {
		passwordService, err := accountService.NewPasswordService()
		if err != nil {
			return fmt.Errorf("failed to create password service: %w", err)
		}
		c.passwordService = passwordService
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.passwordService, nil
}

// AccountUseCase returns the account use case, wrapped with metrics when enabled.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	err := c.initOnce(&c.accountUseCaseInit, "accountUseCase", func() error {
		useCase, err := c.initAccountUseCase()
		c.accountUseCase = useCase
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.accountUseCase, nil
}

// AccountHandler returns the HTTP handler for registration and authentication.
func (c *Container) AccountHandler() (*accountHTTP.AccountHandler, error) {
	err := c.initOnce(&c.accountHandlerInit, "accountHandler", func() error {
		useCase, err := c.AccountUseCase()
		if err != nil {
			return fmt.Errorf("failed to get account use case for account handler: %w", err)
		}
		c.accountHandler = accountHTTP.NewAccountHandler(useCase, c.config.AuthCookieSecure, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.accountHandler, nil
}

func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	tokenRepo, err := c.AuthTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token repository for account use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, err
	}

	keyWrapper, err := c.KeyWrapper()
	if err != nil {
		return nil, err
	}

	baseUseCase := accountUseCase.NewAccountUseCase(
		accountRepo,
		tokenRepo,
		passwordService,
		accountService.NewTokenService(),
		accountService.NewSecretKeyGenerator(),
		keyWrapper,
		c.config.AuthTokenExpiration,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return accountUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
