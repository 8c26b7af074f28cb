// Package http provides the key session endpoints of the reference Auth Backend.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	accountHTTP "github.com/allisson/notekeeper/internal/account/http"
	"github.com/allisson/notekeeper/internal/httputil"
	"github.com/allisson/notekeeper/internal/keysession/http/dto"
	keysessionUseCase "github.com/allisson/notekeeper/internal/keysession/usecase"
	customValidation "github.com/allisson/notekeeper/internal/validation"
)

// KeySessionHandler handles key session registration, retrieval and revocation.
type KeySessionHandler struct {
	keySessionUseCase keysessionUseCase.KeySessionUseCase
	logger            *slog.Logger
}

// NewKeySessionHandler creates a KeySessionHandler.
func NewKeySessionHandler(
	keySessionUseCase keysessionUseCase.KeySessionUseCase,
	logger *slog.Logger,
) *KeySessionHandler {
	return &KeySessionHandler{
		keySessionUseCase: keySessionUseCase,
		logger:            logger,
	}
}

// CreateHandler stores a session-wrapped Secret Key for the authenticated account.
// POST /api/session/create - Requires the auth cookie. Returns 200 OK.
func (h *KeySessionHandler) CreateHandler(c *gin.Context) {
	principal, ok := accountHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, accountDomain.ErrTokenInactive, h.logger)
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.keySessionUseCase.Create(c.Request.Context(), principal, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeySessionToResponse(session))
}

// FetchHandler returns the wrapped Secret Key registered under a session id.
// POST /api/session/fetch - Returns 200 OK or 401 when the session is gone.
func (h *KeySessionHandler) FetchHandler(c *gin.Context) {
	var req dto.LookupSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	wire, err := h.keySessionUseCase.Fetch(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FetchSessionResponse{SecretKey: wire})
}

// RevokeHandler revokes a key session.
// POST /api/session/revoke - Returns 204 No Content.
func (h *KeySessionHandler) RevokeHandler(c *gin.Context) {
	var req dto.LookupSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.keySessionUseCase.Revoke(c.Request.Context(), req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists the authenticated account's key sessions.
// GET /api/session/list?offset=0&limit=50 - Requires the auth cookie.
func (h *KeySessionHandler) ListHandler(c *gin.Context) {
	principal, ok := accountHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, accountDomain.ErrTokenInactive, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	sessions, err := h.keySessionUseCase.List(c.Request.Context(), principal.Account.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeySessionsToListResponse(sessions))
}
