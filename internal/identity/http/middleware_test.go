package http

import (
	"fmt"
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

	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
	"github.com/allisson/gatekeeper/internal/identity/http/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(userID uuid.UUID, superuser bool) *identityDomain.User {
	return &identityDomain.User{
		ID:          userID,
		Email:       "tester@example.com",
		Name:        "Test User",
		APIKeyHash:  "stored-hash",
		IsSuperuser: superuser,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestAuthenticationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.Must(uuid.NewV7())

	newRouter := func(useCase *mocks.MockUserUseCase) *gin.Engine {
		router := gin.New()
		router.GET("/protected", AuthenticationMiddleware(useCase, testLogger()), func(c *gin.Context) {
			user, ok := GetUser(c.Request.Context())
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String()})
		})
		return router
	}

	t.Run("valid credential authenticates", func(t *testing.T) {
		useCase := new(mocks.MockUserUseCase)
		useCase.On("Authenticate", mock.Anything, userID, "secret-key").
			Return(testUser(userID, false), nil)

		router := newRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:secret-key", userID))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
		useCase.AssertExpectations(t)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := newRouter(new(mocks.MockUserUseCase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		router := newRouter(new(mocks.MockUserUseCase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("credential without key part is rejected", func(t *testing.T) {
		router := newRouter(new(mocks.MockUserUseCase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", userID))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-uuid user id is rejected", func(t *testing.T) {
		router := newRouter(new(mocks.MockUserUseCase))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-uuid:secret-key")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		useCase := new(mocks.MockUserUseCase)
		useCase.On("Authenticate", mock.Anything, userID, "wrong-key").
			Return(nil, identityDomain.ErrInvalidCredentials)

		router := newRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:wrong-key", userID))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer prefix is case-insensitive", func(t *testing.T) {
		useCase := new(mocks.MockUserUseCase)
		useCase.On("Authenticate", mock.Anything, userID, "secret-key").
			Return(testUser(userID, false), nil)

		router := newRouter(useCase)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", fmt.Sprintf("BEARER %s:secret-key", userID))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireSuperuser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.Must(uuid.NewV7())

	newRouter := func(user *identityDomain.User) *gin.Engine {
		router := gin.New()
		router.GET("/admin",
			func(c *gin.Context) {
				if user != nil {
					c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
				}
				c.Next()
			},
			RequireSuperuser(testLogger()),
			func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			},
		)
		return router
	}

	t.Run("superuser passes", func(t *testing.T) {
		router := newRouter(testUser(userID, true))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		router := newRouter(testUser(userID, false))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTHORIZATION_DENIED")
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		router := newRouter(nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
