// Package http provides the HTTP server and route registration.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditlogHTTP "github.com/allisson/gatekeeper/internal/auditlog/http"
	auditlogMocks "github.com/allisson/gatekeeper/internal/auditlog/http/mocks"
	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	authzHTTP "github.com/allisson/gatekeeper/internal/authz/http"
	authzMocks "github.com/allisson/gatekeeper/internal/authz/http/mocks"
	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
	identityHTTP "github.com/allisson/gatekeeper/internal/identity/http"
	identityMocks "github.com/allisson/gatekeeper/internal/identity/http/mocks"
	menuHTTP "github.com/allisson/gatekeeper/internal/menu/http"
	menuMocks "github.com/allisson/gatekeeper/internal/menu/http/mocks"
	"github.com/allisson/gatekeeper/internal/metrics"
	workspaceHTTP "github.com/allisson/gatekeeper/internal/workspace/http"
	workspaceMocks "github.com/allisson/gatekeeper/internal/workspace/http/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

// setupTestRouter wires the full route table with mocked use cases.
func setupTestRouter(server *Server) {
	logger := server.logger

	server.SetupRouter(RouterConfig{
		UserHandler:      identityHTTP.NewUserHandler(new(identityMocks.MockUserUseCase), logger),
		WorkspaceHandler: workspaceHTTP.NewWorkspaceHandler(new(workspaceMocks.MockWorkspaceUseCase), logger),
		CheckHandler: authzHTTP.NewCheckHandler(
			new(authzMocks.MockDecisionUseCase),
			new(authzMocks.MockDecisionRecorder),
			logger,
		),
		PolicyHandler:    authzHTTP.NewPolicyHandler(new(authzMocks.MockPolicyUseCase), logger),
		MenuHandler:      menuHTTP.NewMenuHandler(new(menuMocks.MockMenuUseCase), logger),
		AuditLogHandler:  auditlogHTTP.NewAuditLogHandler(new(auditlogMocks.MockAuditLogUseCase), logger),
		Authentication:   identityHTTP.AuthenticationMiddleware(new(identityMocks.MockUserUseCase), logger),
		RequireSuperuser: identityHTTP.RequireSuperuser(logger),
		RequirePermission: authzHTTP.NewPermissionGuard(
			new(authzMocks.MockDecisionUseCase),
			new(authzMocks.MockDecisionRecorder),
			logger,
		),
	})
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

// TestReadinessHandler_NotReady_NilDB tests the readiness endpoint when DB is nil.
func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestSetupRouter_PublicEndpoints verifies health endpoints need no credentials.
func TestSetupRouter_PublicEndpoints(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// TestSetupRouter_RequiresAuthentication verifies API routes reject anonymous requests.
func TestSetupRouter_RequiresAuthentication(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/users"},
		{http.MethodGet, "/v1/workspaces"},
		{http.MethodPost, "/v1/workspaces/" + uuid.Must(uuid.NewV7()).String() + "/check"},
		{http.MethodGet, "/v1/audit-logs"},
	}

	for _, tt := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, tt.path, nil)
		server.GetRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}
}

// TestSetupRouter_NotFoundEndpoint tests 404 handling.
func TestSetupRouter_NotFoundEndpoint(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestSetupRouter_WorkspaceAdminThroughEngine verifies that workspace-scoped
// administration routes are enforced by the decision engine rather than the
// superuser gate, so a delegated (non-superuser) admin can reach them.
func TestSetupRouter_WorkspaceAdminThroughEngine(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := &identityDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		IsActive: true,
	}
	workspaceID := uuid.Must(uuid.NewV7())

	newRouter := func(decision authzDomain.Decision) (*Server, *authzMocks.MockDecisionUseCase) {
		userUseCase := new(identityMocks.MockUserUseCase)
		userUseCase.On("Authenticate", mock.Anything, user.ID, "api-key").Return(user, nil)

		decisionUseCase := new(authzMocks.MockDecisionUseCase)
		decisionUseCase.On("Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(decision, nil)

		recorder := new(authzMocks.MockDecisionRecorder)
		recorder.On("RecordDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything).Return(nil)

		policyUseCase := new(authzMocks.MockPolicyUseCase)
		policyUseCase.On("ListUserRoles", mock.Anything, workspaceID, user.ID).
			Return([]string{}, nil)

		server := createTestServer()
		server.SetupRouter(RouterConfig{
			UserHandler:      identityHTTP.NewUserHandler(userUseCase, logger),
			WorkspaceHandler: workspaceHTTP.NewWorkspaceHandler(new(workspaceMocks.MockWorkspaceUseCase), logger),
			CheckHandler:     authzHTTP.NewCheckHandler(decisionUseCase, recorder, logger),
			PolicyHandler:    authzHTTP.NewPolicyHandler(policyUseCase, logger),
			MenuHandler:      menuHTTP.NewMenuHandler(new(menuMocks.MockMenuUseCase), logger),
			AuditLogHandler:  auditlogHTTP.NewAuditLogHandler(new(auditlogMocks.MockAuditLogUseCase), logger),
			Authentication:   identityHTTP.AuthenticationMiddleware(userUseCase, logger),
			RequireSuperuser: identityHTTP.RequireSuperuser(logger),
			RequirePermission: authzHTTP.NewPermissionGuard(
				decisionUseCase, recorder, logger,
			),
		})
		return server, decisionUseCase
	}

	rolesPath := "/v1/workspaces/" + workspaceID.String() + "/users/" + user.ID.String() + "/roles"

	t.Run("engine allow admits a non-superuser", func(t *testing.T) {
		server, decisionUseCase := newRouter(authzDomain.Allow(authzDomain.ReasonUserGrant))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, rolesPath, nil)
		req.Header.Set("Authorization", "Bearer "+user.ID.String()+":api-key")
		server.GetRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		decisionUseCase.AssertExpectations(t)
	})

	t.Run("engine deny blocks a non-superuser", func(t *testing.T) {
		server, _ := newRouter(authzDomain.Deny())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, rolesPath, nil)
		req.Header.Set("Authorization", "Bearer "+user.ID.String()+":api-key")
		server.GetRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "AUTHORIZATION_DENIED")
	})
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	// Verify no startup errors
	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
		// No error, good
	}
}

// TestRequestIDMiddleware_HeaderPresent verifies X-Request-Id header is present in response.
func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID, "X-Request-Id header should be present")

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsedUUID, "X-Request-Id should not be nil UUID")
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Create metrics provider
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	// Create metrics server
	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	// Test the handler from metricsServer exactly as it's configured
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// TestServer_NoMetricsEndpoint tests that the main server does NOT expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	server := createTestServer()
	setupTestRouter(server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
