// Package dto contains response types for the audit log HTTP API.
package dto

import (
	"time"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
)

// AuditLogResponse represents one decision record in API responses.
// Signatures are server-side integrity material and are not exposed.
type AuditLogResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	PrincipalID string    `json:"principal_id"`
	WorkspaceID string    `json:"workspace_id"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Allowed     bool      `json:"allowed"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListAuditLogsResponse wraps a page of decision records.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"audit_logs"`
}

// MapAuditLogToResponse converts a domain record to its API representation.
func MapAuditLogToResponse(log *auditlogDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          log.ID.String(),
		RequestID:   log.RequestID,
		PrincipalID: log.PrincipalID.String(),
		WorkspaceID: log.WorkspaceID.String(),
		Resource:    log.Resource,
		Action:      log.Action,
		Allowed:     log.Allowed,
		Reason:      log.Reason,
		CreatedAt:   log.CreatedAt,
	}
}

// MapAuditLogsToListResponse converts a page of domain records to its API representation.
func MapAuditLogsToListResponse(logs []*auditlogDomain.AuditLog) ListAuditLogsResponse {
	response := ListAuditLogsResponse{AuditLogs: make([]AuditLogResponse, 0, len(logs))}
	for _, log := range logs {
		response.AuditLogs = append(response.AuditLogs, MapAuditLogToResponse(log))
	}
	return response
}
