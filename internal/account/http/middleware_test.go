package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/account/usecase/mocks"
)

func setupProtectedRouter(useCase *mocks.MockAccountUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CookieAuthenticationMiddleware(useCase, testLogger()))
	router.GET("/protected", func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, principal.Account.Username)
	})
	return router
}

func TestCookieAuthenticationMiddleware(t *testing.T) {
	t.Run("Success_StoresPrincipal", func(t *testing.T) {
		useCase := &mocks.MockAccountUseCase{}
		router := setupProtectedRouter(useCase)

		principal := &accountDomain.Principal{
			Account: &accountDomain.Account{ID: uuid.Must(uuid.NewV7()), Username: "alice"},
			Token:   &accountDomain.AuthToken{},
		}
		useCase.On("AuthenticateToken", mock.Anything, "plain-token").Return(principal, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: accountDomain.AuthCookieName, Value: "plain-token"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("Error_MissingCookie", func(t *testing.T) {
		useCase := &mocks.MockAccountUseCase{}
		router := setupProtectedRouter(useCase)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		useCase.AssertNotCalled(t, "AuthenticateToken", mock.Anything, mock.Anything)
	})

	t.Run("Error_InactiveToken", func(t *testing.T) {
		useCase := &mocks.MockAccountUseCase{}
		router := setupProtectedRouter(useCase)

		useCase.On("AuthenticateToken", mock.Anything, "stale").Return(nil, accountDomain.ErrTokenInactive).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: accountDomain.AuthCookieName, Value: "stale"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_Backend", func(t *testing.T) {
		useCase := &mocks.MockAccountUseCase{}
		router := setupProtectedRouter(useCase)

		useCase.On("AuthenticateToken", mock.Anything, "tok").Return(nil, errors.New("db down")).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: accountDomain.AuthCookieName, Value: "tok"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetPrincipal_Empty(t *testing.T) {
	_, ok := GetPrincipal(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
