// Package http implements HTTP handlers for workspace management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/httputil"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
	"github.com/allisson/gatekeeper/internal/workspace/http/dto"
	workspaceUseCase "github.com/allisson/gatekeeper/internal/workspace/usecase"
)

// WorkspaceHandler handles HTTP requests for workspace management operations.
// All routes are superuser-guarded at registration time.
type WorkspaceHandler struct {
	workspaceUseCase workspaceUseCase.WorkspaceUseCase
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler with required dependencies.
func NewWorkspaceHandler(useCase workspaceUseCase.WorkspaceUseCase, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUseCase: useCase,
		logger:           logger,
	}
}

// CreateHandler provisions a new workspace.
// POST /v1/workspaces
// Returns 201 Created with the workspace data.
func (h *WorkspaceHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateWorkspaceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	workspace, err := h.workspaceUseCase.Create(c.Request.Context(), &workspaceDomain.CreateWorkspaceInput{
		Name: req.Name,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapWorkspaceToResponse(workspace))
}

// GetHandler retrieves a workspace by ID.
// GET /v1/workspaces/:workspace_id
// Returns 200 OK with workspace data.
func (h *WorkspaceHandler) GetHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	workspace, err := h.workspaceUseCase.Get(c.Request.Context(), workspaceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapWorkspaceToResponse(workspace))
}

// ListHandler retrieves workspaces with pagination support.
// GET /v1/workspaces?offset=0&limit=50
// Returns 200 OK with paginated workspace list.
func (h *WorkspaceHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	workspaces, err := h.workspaceUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapWorkspacesToListResponse(workspaces))
}

// DeleteHandler removes a workspace and all policy facts scoped to it.
// DELETE /v1/workspaces/:workspace_id
// Returns 204 No Content.
func (h *WorkspaceHandler) DeleteHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.workspaceUseCase.Delete(c.Request.Context(), workspaceID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
