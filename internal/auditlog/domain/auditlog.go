// Package domain defines the audit log domain model. Every authorization
// decision leaves a signed, append-only record; the trail deliberately has no
// foreign keys so it survives principal and workspace deletion.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// AuditLog is one signed authorization decision record. Resource holds the
// canonical "<kind>:<workspace_id>:<path>" descriptor so the record stays
// meaningful after the resource itself is gone.
type AuditLog struct {
	ID          uuid.UUID
	RequestID   string
	PrincipalID uuid.UUID
	WorkspaceID uuid.UUID
	Resource    string
	Action      string
	Allowed     bool
	Reason      string
	Signature   []byte
	CreatedAt   time.Time
}

// ListFilter narrows audit log queries. Nil fields match everything.
type ListFilter struct {
	WorkspaceID *uuid.UUID
	Since       *time.Time
	Until       *time.Time
}

// VerifyReport summarizes an audit trail verification run.
type VerifyReport struct {
	Checked int64
	Invalid []uuid.UUID
}

// Domain errors for audit log operations.
var (
	// ErrSignatureInvalid indicates a record's signature does not match its
	// content: the record was tampered with or signed with a different key.
	ErrSignatureInvalid = apperrors.New("audit log signature invalid")
)
