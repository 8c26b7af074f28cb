package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	accountUseCase "github.com/allisson/notekeeper/internal/account/usecase"
	"github.com/allisson/notekeeper/internal/httputil"
)

// CookieAuthenticationMiddleware resolves the notekeeper_auth cookie to a Principal and
// stores it in the request context. Missing, unknown, expired or revoked cookies abort
// with 401.
func CookieAuthenticationMiddleware(
	accountUseCase accountUseCase.AccountUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, err := c.Cookie(accountDomain.AuthCookieName)
		if err != nil || plainToken == "" {
			logger.Debug("authentication failed: missing auth cookie")
			httputil.HandleErrorGin(c, accountDomain.ErrTokenInactive, logger)
			c.Abort()
			return
		}

		principal, err := accountUseCase.AuthenticateToken(c.Request.Context(), plainToken)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.String("account_id", principal.Account.ID.String()))

		c.Next()
	}
}
