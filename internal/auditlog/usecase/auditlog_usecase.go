package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	auditlogService "github.com/allisson/gatekeeper/internal/auditlog/service"
	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// verifyPageSize bounds memory while walking the trail.
const verifyPageSize = 500

type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       auditlogService.Signer
}

// RecordDecision signs and appends one authorization decision record.
func (a *auditLogUseCase) RecordDecision(
	ctx context.Context,
	requestID string,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
	decision authzDomain.Decision,
) error {
	log := &auditlogDomain.AuditLog{
		ID:          uuid.Must(uuid.NewV7()),
		RequestID:   requestID,
		PrincipalID: principal.UserID,
		WorkspaceID: resource.WorkspaceID,
		Resource:    resource.String(),
		Action:      string(action),
		Allowed:     decision.Allowed,
		Reason:      string(decision.Reason),
		CreatedAt:   time.Now().UTC(),
	}

	signature, err := a.signer.Sign(log)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign audit log")
	}
	log.Signature = signature

	return a.auditLogRepo.Create(ctx, log)
}

// List retrieves records matching the filter with pagination support.
func (a *auditLogUseCase) List(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
	offset, limit int,
) ([]*auditlogDomain.AuditLog, error) {
	return a.auditLogRepo.List(ctx, filter, offset, limit)
}

// Verify walks the records matching the filter and checks every signature.
func (a *auditLogUseCase) Verify(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
) (*auditlogDomain.VerifyReport, error) {
	report := &auditlogDomain.VerifyReport{}

	for offset := 0; ; offset += verifyPageSize {
		logs, err := a.auditLogRepo.List(ctx, filter, offset, verifyPageSize)
		if err != nil {
			return nil, err
		}

		for _, log := range logs {
			report.Checked++
			if err := a.signer.Verify(log); err != nil {
				if !apperrors.Is(err, auditlogDomain.ErrSignatureInvalid) {
					return nil, err
				}
				report.Invalid = append(report.Invalid, log.ID)
			}
		}

		if len(logs) < verifyPageSize {
			return report, nil
		}
	}
}

// Clean expires records older than the retention window.
func (a *auditLogUseCase) Clean(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "retention must be positive")
	}
	cutoff := time.Now().UTC().Add(-retention)
	return a.auditLogRepo.DeleteOlderThan(ctx, cutoff)
}

// NewAuditLogUseCase creates a new audit log use case.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository, signer auditlogService.Signer) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
	}
}
