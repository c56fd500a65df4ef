// Package http provides the HTTP server and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditlogHTTP "github.com/allisson/gatekeeper/internal/auditlog/http"
	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	authzHTTP "github.com/allisson/gatekeeper/internal/authz/http"
	identityHTTP "github.com/allisson/gatekeeper/internal/identity/http"
	menuHTTP "github.com/allisson/gatekeeper/internal/menu/http"
	workspaceHTTP "github.com/allisson/gatekeeper/internal/workspace/http"
)

// Server represents the HTTP API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router must be configured with
// SetupRouter before Start is called.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware wired into the router.
// Optional middleware (RateLimit, CORS, Metrics) may be nil.
type RouterConfig struct {
	UserHandler      *identityHTTP.UserHandler
	WorkspaceHandler *workspaceHTTP.WorkspaceHandler
	CheckHandler     *authzHTTP.CheckHandler
	PolicyHandler    *authzHTTP.PolicyHandler
	MenuHandler      *menuHTTP.MenuHandler
	AuditLogHandler  *auditlogHTTP.AuditLogHandler

	Authentication    gin.HandlerFunc
	RequireSuperuser  gin.HandlerFunc
	RequirePermission authzHTTP.PermissionGuard
	RateLimit         gin.HandlerFunc
	CORS              gin.HandlerFunc
	Metrics           gin.HandlerFunc
}

// SetupRouter builds the Gin router and registers all API routes.
//
// Route layout:
//   - /health and /ready are public.
//   - Everything under /v1 requires authentication.
//   - The check endpoint and the visible-menus endpoint are open to any
//     authenticated user; the engine itself decides what they may see.
//   - Global administration (users, workspaces, audit logs) requires a
//     superuser.
//   - Workspace-scoped administration (policy facts, roles, menus) is
//     enforced through the decision engine itself: superusers pass via the
//     superuser bypass, and a grant on the api-kind "admin" resource (or a
//     narrower path under it) delegates that surface to a workspace admin.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.CORS != nil {
		router.Use(cfg.CORS)
	}
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(cfg.Authentication)
	if cfg.RateLimit != nil {
		v1.Use(cfg.RateLimit)
	}

	// Endpoints available to any authenticated user.
	v1.POST("/workspaces/:workspace_id/check", cfg.CheckHandler.CheckHandler)
	v1.GET("/workspaces/:workspace_id/menus/visible", cfg.MenuHandler.VisibleHandler)

	// Global administration surface.
	admin := v1.Group("")
	admin.Use(cfg.RequireSuperuser)

	admin.POST("/users", cfg.UserHandler.CreateHandler)
	admin.GET("/users", cfg.UserHandler.ListHandler)
	admin.GET("/users/:user_id", cfg.UserHandler.GetHandler)
	admin.DELETE("/users/:user_id", cfg.UserHandler.DeactivateHandler)

	admin.POST("/workspaces", cfg.WorkspaceHandler.CreateHandler)
	admin.GET("/workspaces", cfg.WorkspaceHandler.ListHandler)
	admin.GET("/workspaces/:workspace_id", cfg.WorkspaceHandler.GetHandler)
	admin.DELETE("/workspaces/:workspace_id", cfg.WorkspaceHandler.DeleteHandler)

	admin.GET("/audit-logs", cfg.AuditLogHandler.ListHandler)

	// Workspace-scoped administration, enforced by the decision engine.
	guard := cfg.RequirePermission

	v1.POST("/workspaces/:workspace_id/permissions",
		guard(authzDomain.ResourceAPI, "admin/permissions", authzDomain.ActionWrite),
		cfg.PolicyHandler.GrantHandler)
	v1.DELETE("/workspaces/:workspace_id/permissions",
		guard(authzDomain.ResourceAPI, "admin/permissions", authzDomain.ActionDelete),
		cfg.PolicyHandler.RevokeHandler)
	v1.GET("/workspaces/:workspace_id/permissions",
		guard(authzDomain.ResourceAPI, "admin/permissions", authzDomain.ActionRead),
		cfg.PolicyHandler.ListPermissionsHandler)

	v1.POST("/workspaces/:workspace_id/roles",
		guard(authzDomain.ResourceAPI, "admin/roles", authzDomain.ActionWrite),
		cfg.PolicyHandler.AssignRoleHandler)
	v1.DELETE("/workspaces/:workspace_id/roles",
		guard(authzDomain.ResourceAPI, "admin/roles", authzDomain.ActionDelete),
		cfg.PolicyHandler.UnassignRoleHandler)
	v1.GET("/workspaces/:workspace_id/users/:user_id/roles",
		guard(authzDomain.ResourceAPI, "admin/roles", authzDomain.ActionRead),
		cfg.PolicyHandler.ListUserRolesHandler)

	v1.POST("/workspaces/:workspace_id/menus",
		guard(authzDomain.ResourceAPI, "admin/menus", authzDomain.ActionWrite),
		cfg.MenuHandler.CreateHandler)
	v1.GET("/workspaces/:workspace_id/menus",
		guard(authzDomain.ResourceAPI, "admin/menus", authzDomain.ActionRead),
		cfg.MenuHandler.ListHandler)
	v1.DELETE("/workspaces/:workspace_id/menus/:menu_id",
		guard(authzDomain.ResourceAPI, "admin/menus", authzDomain.ActionDelete),
		cfg.MenuHandler.DeleteHandler)

	s.router = router
}

// GetRouter returns the configured router for testing purposes.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter first")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
