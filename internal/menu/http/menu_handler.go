// Package http implements HTTP handlers for menu management and
// permission-aware menu visibility.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	identityHTTP "github.com/allisson/gatekeeper/internal/identity/http"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
	"github.com/allisson/gatekeeper/internal/menu/http/dto"
	menuUseCase "github.com/allisson/gatekeeper/internal/menu/usecase"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// MenuHandler handles HTTP requests for menu operations. Management routes
// are superuser-guarded at registration time; the visibility route only
// requires authentication.
type MenuHandler struct {
	menuUseCase menuUseCase.MenuUseCase
	logger      *slog.Logger
}

// NewMenuHandler creates a new menu handler with required dependencies.
func NewMenuHandler(useCase menuUseCase.MenuUseCase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		menuUseCase: useCase,
		logger:      logger,
	}
}

// CreateHandler adds a menu entry to a workspace.
// POST /v1/workspaces/:workspace_id/menus
// Returns 201 Created with the menu data.
func (h *MenuHandler) CreateHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &menuDomain.CreateMenuInput{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Path:        req.Path,
		Position:    req.Position,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid parent ID format: must be a valid UUID"),
				h.logger)
			return
		}
		input.ParentID = &parentID
	}

	menu, err := h.menuUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapMenuToResponse(menu))
}

// ListHandler retrieves every menu entry of the workspace in display order.
// GET /v1/workspaces/:workspace_id/menus
// Returns 200 OK with the full menu list.
func (h *MenuHandler) ListHandler(c *gin.Context) {
	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	menus, err := h.menuUseCase.List(c.Request.Context(), workspaceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMenusToListResponse(menus))
}

// VisibleHandler retrieves the menu entries the calling principal may read,
// in display order.
// GET /v1/workspaces/:workspace_id/menus/visible
// Returns 200 OK with the filtered menu list.
func (h *MenuHandler) VisibleHandler(c *gin.Context) {
	user, ok := identityHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid workspace ID format: must be a valid UUID"),
			h.logger)
		return
	}

	principal := authzDomain.Principal{UserID: user.ID, IsSuperuser: user.IsSuperuser}

	menus, err := h.menuUseCase.ListVisible(c.Request.Context(), principal, workspaceID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrUnavailable, "policy store unavailable"),
			h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMenusToListResponse(menus))
}

// DeleteHandler removes a menu entry. Children cascade.
// DELETE /v1/workspaces/:workspace_id/menus/:menu_id
// Returns 204 No Content.
func (h *MenuHandler) DeleteHandler(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("menu_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid menu ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.menuUseCase.Delete(c.Request.Context(), menuID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
