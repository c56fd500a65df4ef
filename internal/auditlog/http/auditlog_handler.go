// Package http implements HTTP handlers for querying the audit trail.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	"github.com/allisson/gatekeeper/internal/auditlog/http/dto"
	auditlogUseCase "github.com/allisson/gatekeeper/internal/auditlog/usecase"
	"github.com/allisson/gatekeeper/internal/httputil"
)

// AuditLogHandler handles HTTP requests for the audit trail. All routes are
// superuser-guarded at registration time.
type AuditLogHandler struct {
	auditLogUseCase auditlogUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(useCase auditlogUseCase.AuditLogUseCase, logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: useCase,
		logger:          logger,
	}
}

func parseListFilter(c *gin.Context) (auditlogDomain.ListFilter, error) {
	var filter auditlogDomain.ListFilter

	if raw := c.Query("workspace_id"); raw != "" {
		workspaceID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid workspace ID format: must be a valid UUID")
		}
		filter.WorkspaceID = &workspaceID
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid since timestamp: must be RFC 3339")
		}
		filter.Since = &since
	}
	if raw := c.Query("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid until timestamp: must be RFC 3339")
		}
		filter.Until = &until
	}

	return filter, nil
}

// ListHandler retrieves decision records with optional filters.
// GET /v1/audit-logs?workspace_id=...&since=...&until=...&offset=0&limit=50
// Returns 200 OK with the matching records in insertion order.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter, err := parseListFilter(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	logs, err := h.auditLogUseCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(logs))
}
