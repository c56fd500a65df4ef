package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/authz/http/dto"
	authzUseCase "github.com/allisson/gatekeeper/internal/authz/usecase"
	"github.com/allisson/gatekeeper/internal/httputil"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// PolicyHandler handles HTTP requests for policy administration: permission
// grants, revocations, and role memberships. All routes are superuser-guarded
// at registration time.
type PolicyHandler struct {
	policyUseCase authzUseCase.PolicyUseCase
	logger        *slog.Logger
}

// NewPolicyHandler creates a new policy handler with required dependencies.
func NewPolicyHandler(policyUseCase authzUseCase.PolicyUseCase, logger *slog.Logger) *PolicyHandler {
	return &PolicyHandler{
		policyUseCase: policyUseCase,
		logger:        logger,
	}
}

func (h *PolicyHandler) bindPermissionRequest(c *gin.Context) (uuid.UUID, authzDomain.Subject, authzDomain.Resource, authzDomain.Action, bool) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, authzDomain.Subject{}, authzDomain.Resource{}, "", false
	}

	var req dto.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return uuid.Nil, authzDomain.Subject{}, authzDomain.Resource{}, "", false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return uuid.Nil, authzDomain.Subject{}, authzDomain.Resource{}, "", false
	}

	subject, err := authzDomain.ParseSubject(req.Subject)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return uuid.Nil, authzDomain.Subject{}, authzDomain.Resource{}, "", false
	}

	resource, err := authzDomain.NewResource(authzDomain.ResourceKind(req.Kind), workspaceID, req.Path)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return uuid.Nil, authzDomain.Subject{}, authzDomain.Resource{}, "", false
	}

	return workspaceID, subject, resource, authzDomain.Action(req.Action), true
}

// GrantHandler records a permission grant. Granting an already-present fact
// is a no-op.
// POST /v1/workspaces/:workspace_id/permissions
// Returns 204 No Content.
func (h *PolicyHandler) GrantHandler(c *gin.Context) {
	workspaceID, subject, resource, action, ok := h.bindPermissionRequest(c)
	if !ok {
		return
	}

	if err := h.policyUseCase.GrantPermission(c.Request.Context(), workspaceID, subject, resource, action); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// RevokeHandler removes a permission grant.
// DELETE /v1/workspaces/:workspace_id/permissions
// Returns 204 No Content, or 404 when the grant does not exist.
func (h *PolicyHandler) RevokeHandler(c *gin.Context) {
	workspaceID, subject, resource, action, ok := h.bindPermissionRequest(c)
	if !ok {
		return
	}

	if err := h.policyUseCase.RevokePermission(c.Request.Context(), workspaceID, subject, resource, action); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListPermissionsHandler retrieves the rules granted directly to one subject,
// in grant order.
// GET /v1/workspaces/:workspace_id/permissions?subject=user:<uuid>
// Returns 200 OK with the subject's grants.
func (h *PolicyHandler) ListPermissionsHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	subject, err := authzDomain.ParseSubject(c.Query("subject"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rules, err := h.policyUseCase.ListSubjectPermissions(c.Request.Context(), workspaceID, subject)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRulesToListResponse(rules))
}

func (h *PolicyHandler) bindRoleMembershipRequest(c *gin.Context) (uuid.UUID, uuid.UUID, string, bool) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, uuid.Nil, "", false
	}

	var req dto.RoleMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return uuid.Nil, uuid.Nil, "", false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return uuid.Nil, uuid.Nil, "", false
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, uuid.Nil, "", false
	}

	return workspaceID, userID, req.Role, true
}

// AssignRoleHandler adds a role membership edge for a user. Assigning an
// already-held role is a no-op.
// POST /v1/workspaces/:workspace_id/roles
// Returns 204 No Content.
func (h *PolicyHandler) AssignRoleHandler(c *gin.Context) {
	workspaceID, userID, role, ok := h.bindRoleMembershipRequest(c)
	if !ok {
		return
	}

	if err := h.policyUseCase.AssignRole(c.Request.Context(), workspaceID, userID, role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// UnassignRoleHandler removes a role membership edge.
// DELETE /v1/workspaces/:workspace_id/roles
// Returns 204 No Content, or 404 when the user does not hold the role.
func (h *PolicyHandler) UnassignRoleHandler(c *gin.Context) {
	workspaceID, userID, role, ok := h.bindRoleMembershipRequest(c)
	if !ok {
		return
	}

	if err := h.policyUseCase.UnassignRole(c.Request.Context(), workspaceID, userID, role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListUserRolesHandler retrieves the roles a user holds in the workspace.
// GET /v1/workspaces/:workspace_id/users/:user_id/roles
// Returns 200 OK with the role names.
func (h *PolicyHandler) ListUserRolesHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	roles, err := h.policyUseCase.ListUserRoles(c.Request.Context(), workspaceID, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if roles == nil {
		roles = []string{}
	}

	c.JSON(http.StatusOK, dto.ListRolesResponse{Roles: roles})
}
