package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	accountHTTP "github.com/allisson/notekeeper/internal/account/http"
	"github.com/allisson/notekeeper/internal/httputil"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
	"github.com/allisson/notekeeper/internal/keysession/http/dto"
	"github.com/allisson/notekeeper/internal/keysession/usecase/mocks"
)

func setupKeySessionRouter(
	t *testing.T,
	principal *accountDomain.Principal,
) (*gin.Engine, *mocks.MockKeySessionUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	useCase := &mocks.MockKeySessionUseCase{}
	handler := NewKeySessionHandler(useCase, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	authenticated := router.Group("/api/session", func(c *gin.Context) {
		if principal != nil {
			c.Request = c.Request.WithContext(accountHTTP.WithPrincipal(c.Request.Context(), principal))
		}
		c.Next()
	})
	authenticated.POST("/create", handler.CreateHandler)
	authenticated.GET("/list", handler.ListHandler)
	router.POST("/api/session/fetch", handler.FetchHandler)
	router.POST("/api/session/revoke", handler.RevokeHandler)
	return router, useCase
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func alicePrincipal() *accountDomain.Principal {
	return &accountDomain.Principal{
		Account: &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Username: "alice"},
		Token:   &accountDomain.AuthToken{ExpiresAt: time.Now().Add(time.Hour)},
	}
}

func TestKeySessionHandler_Create(t *testing.T) {
	keyID := uuid.New()
	body := dto.CreateSessionRequest{Username: "alice", SessionSecretKey: "tagciphertext", KeyID: keyID.String()}

	t.Run("Success", func(t *testing.T) {
		principal := alicePrincipal()
		router, useCase := setupKeySessionRouter(t, principal)

		useCase.On("Create", mock.Anything, principal, &keysessionDomain.CreateInput{
			Username:         "alice",
			SessionSecretKey: "tagciphertext",
			KeyID:            keyID,
		}).Return(&keysessionDomain.KeySession{ID: keyID, ExpiresAt: principal.Token.ExpiresAt}, nil).Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/create", body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), keyID.String())
		assert.NotContains(t, w.Body.String(), "tagciphertext")
		useCase.AssertExpectations(t)
	})

	t.Run("Error_NoPrincipal", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, nil)

		w := doJSON(t, router, http.MethodPost, "/api/session/create", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, alicePrincipal())
		useCase.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, keysessionDomain.ErrKeySessionExists).
			Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/create", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_Mismatch", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, alicePrincipal())
		useCase.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, keysessionDomain.ErrAccountMismatch).
			Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/create", body)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_InvalidKeyID", func(t *testing.T) {
		router, _ := setupKeySessionRouter(t, alicePrincipal())

		w := doJSON(t, router, http.MethodPost, "/api/session/create",
			dto.CreateSessionRequest{Username: "alice", SessionSecretKey: "x", KeyID: "nope"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestKeySessionHandler_Fetch(t *testing.T) {
	keyID := uuid.New()
	lookup := &keysessionDomain.LookupInput{Username: "alice", KeyID: keyID}
	body := dto.LookupSessionRequest{Username: "alice", UUID: keyID.String()}

	t.Run("Success", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, nil)
		useCase.On("Fetch", mock.Anything, lookup).Return("session-wire", nil).Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/fetch", body)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.FetchSessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "session-wire", resp.SecretKey)
	})

	t.Run("Error_Gone", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, nil)
		useCase.On("Fetch", mock.Anything, lookup).Return("", keysessionDomain.ErrKeySessionNotFound).Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/fetch", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Session expired or not found", errorMessage(t, w))
	})

	t.Run("Error_Internal", func(t *testing.T) {
		router, useCase := setupKeySessionRouter(t, nil)
		useCase.On("Fetch", mock.Anything, lookup).Return("", errors.New("kms down")).Once()

		w := doJSON(t, router, http.MethodPost, "/api/session/fetch", body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "kms down")
	})
}

func TestKeySessionHandler_Revoke(t *testing.T) {
	keyID := uuid.New()

	router, useCase := setupKeySessionRouter(t, nil)
	useCase.On("Revoke", mock.Anything, &keysessionDomain.LookupInput{Username: "alice", KeyID: keyID}).
		Return(nil).
		Once()

	w := doJSON(t, router, http.MethodPost, "/api/session/revoke",
		dto.LookupSessionRequest{Username: "alice", UUID: keyID.String()})

	assert.Equal(t, http.StatusNoContent, w.Code)
	useCase.AssertExpectations(t)
}

func TestKeySessionHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		principal := alicePrincipal()
		router, useCase := setupKeySessionRouter(t, principal)

		sessions := []*keysessionDomain.KeySession{{ID: uuid.New()}, {ID: uuid.New()}}
		useCase.On("List", mock.Anything, principal.Account.ID, 10, 5).Return(sessions, nil).Once()

		w := doJSON(t, router, http.MethodGet, "/api/session/list?offset=10&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.ListSessionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})

	t.Run("Error_BadLimit", func(t *testing.T) {
		router, _ := setupKeySessionRouter(t, alicePrincipal())

		w := doJSON(t, router, http.MethodGet, "/api/session/list?limit=1000", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
