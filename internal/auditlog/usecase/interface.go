// Package usecase implements audit log business logic: recording signed
// decision records, querying the trail, verifying integrity, and expiring
// old records.
package usecase

import (
	"context"
	"time"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// AuditLogRepository defines the interface for audit log data access.
type AuditLogRepository interface {
	// Create appends a new audit log record.
	Create(ctx context.Context, log *auditlogDomain.AuditLog) error

	// List retrieves records matching the filter, in insertion order, with
	// pagination support.
	List(
		ctx context.Context,
		filter auditlogDomain.ListFilter,
		offset, limit int,
	) ([]*auditlogDomain.AuditLog, error)

	// DeleteOlderThan expires records created before the cutoff.
	// Returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditLogUseCase defines the interface for audit log business operations.
type AuditLogUseCase interface {
	// RecordDecision signs and appends one authorization decision record.
	RecordDecision(
		ctx context.Context,
		requestID string,
		principal authzDomain.Principal,
		resource authzDomain.Resource,
		action authzDomain.Action,
		decision authzDomain.Decision,
	) error

	// List retrieves records matching the filter with pagination support.
	List(
		ctx context.Context,
		filter auditlogDomain.ListFilter,
		offset, limit int,
	) ([]*auditlogDomain.AuditLog, error)

	// Verify walks the records matching the filter and checks every
	// signature, reporting the IDs that fail.
	Verify(ctx context.Context, filter auditlogDomain.ListFilter) (*auditlogDomain.VerifyReport, error)

	// Clean expires records older than the retention window.
	// Returns how many were removed.
	Clean(ctx context.Context, retention time.Duration) (int64, error)
}
