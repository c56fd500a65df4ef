package http

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	authzUseCase "github.com/allisson/gatekeeper/internal/authz/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	identityHTTP "github.com/allisson/gatekeeper/internal/identity/http"
)

// PermissionGuard builds RequirePermission middleware for one route, with the
// engine dependencies already bound. The router describes each protected
// resource with a kind, a path template, and an action.
type PermissionGuard func(
	kind authzDomain.ResourceKind,
	pathTemplate string,
	action authzDomain.Action,
) gin.HandlerFunc

// NewPermissionGuard binds the decision engine, the audit recorder, and the
// logger into a PermissionGuard for route registration.
func NewPermissionGuard(
	decisionUseCase authzUseCase.DecisionUseCase,
	recorder DecisionRecorder,
	logger *slog.Logger,
) PermissionGuard {
	return func(kind authzDomain.ResourceKind, pathTemplate string, action authzDomain.Action) gin.HandlerFunc {
		return RequirePermission(decisionUseCase, recorder, kind, pathTemplate, action, logger)
	}
}

// resolvePathTemplate substitutes ":param" segments of a resource path
// template with the matched route parameters, e.g. "menus/:menu_id" becomes
// "menus/018f6a4e-...".
func resolvePathTemplate(c *gin.Context, template string) string {
	segments := strings.Split(template, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = c.Param(segment[1:])
		}
	}
	return strings.Join(segments, "/")
}

// RequirePermission guards a route behind an authorization decision for the
// authenticated caller. The protected resource is described by a kind and a
// path template resolved against the route parameters; the workspace comes
// from the workspace_id route parameter.
//
// Enforcement fails closed: a decision engine failure produces the same
// uniform denial as a deny, so callers cannot distinguish an outage from a
// missing grant.
func RequirePermission(
	decisionUseCase authzUseCase.DecisionUseCase,
	recorder DecisionRecorder,
	kind authzDomain.ResourceKind,
	pathTemplate string,
	action authzDomain.Action,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := identityHTTP.GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		workspaceID, err := uuid.Parse(c.Param("workspace_id"))
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
				logger)
			c.Abort()
			return
		}

		resource, err := authzDomain.NewResource(kind, workspaceID, resolvePathTemplate(c, pathTemplate))
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		principal := authzDomain.Principal{UserID: user.ID, IsSuperuser: user.IsSuperuser}

		decision, err := decisionUseCase.Check(c.Request.Context(), principal, resource, action)
		if err != nil {
			logger.Error("authorization check failed, denying request",
				"error", err,
				"resource", resource.String(),
				"action", string(action),
			)
			decision = authzDomain.DenyStoreError()
		}

		recordDecision(c, recorder, principal, resource, action, decision, logger)

		if !decision.Allowed {
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
