// Package domain defines the workspace domain model. A workspace is the
// tenant boundary of the authorization engine: every policy fact, menu node,
// and membership belongs to exactly one workspace.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Workspace represents an isolated tenant domain.
type Workspace struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// CreateWorkspaceInput contains the parameters for creating a workspace.
type CreateWorkspaceInput struct {
	Name string
}

// ErrWorkspaceNotFound indicates the requested workspace does not exist.
var ErrWorkspaceNotFound = apperrors.Wrap(apperrors.ErrNotFound, "workspace not found")
