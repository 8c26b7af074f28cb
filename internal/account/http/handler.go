// Package http provides the account endpoints of the reference Auth Backend together
// with the cookie authentication and per-IP rate limit middleware.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/account/http/dto"
	accountUseCase "github.com/allisson/notekeeper/internal/account/usecase"
	"github.com/allisson/notekeeper/internal/httputil"
	customValidation "github.com/allisson/notekeeper/internal/validation"
)

// AccountHandler handles registration and authentication.
type AccountHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	cookieSecure   bool
	logger         *slog.Logger
	now            func() time.Time
}

// NewAccountHandler creates an AccountHandler. cookieSecure marks the auth cookie as
// HTTPS only.
func NewAccountHandler(
	accountUseCase accountUseCase.AccountUseCase,
	cookieSecure bool,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		cookieSecure:   cookieSecure,
		logger:         logger,
		now:            time.Now,
	}
}

// RegisterHandler creates an account.
// POST /api/register - Returns 201 Created with the user id.
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{UserID: account.Username})
}

// AuthenticateHandler verifies credentials, sets the auth cookie and returns the
// account-level wrapped Secret Key.
// POST /api/authenticate - Returns 200 OK.
func (h *AccountHandler) AuthenticateHandler(c *gin.Context) {
	var req dto.AuthenticateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.accountUseCase.Authenticate(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	maxAge := int(output.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accountDomain.AuthCookieName, output.PlainToken, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, dto.MapAuthenticateOutputToResponse(output))
}
