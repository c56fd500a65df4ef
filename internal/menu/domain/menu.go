// Package domain defines the menu domain model. Menu entries are
// workspace-scoped navigation nodes; their paths live in the "menu" resource
// namespace so visibility is decided by the same rules as everything else.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Menu represents a navigation node inside a workspace. Paths nest on
// segment boundaries, mirroring hierarchical menu resources: a read grant on
// "reports" also exposes "reports/monthly".
type Menu struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        string
	Path        string
	ParentID    *uuid.UUID
	Position    int
	CreatedAt   time.Time
}

// CreateMenuInput contains the parameters for creating a menu entry.
type CreateMenuInput struct {
	WorkspaceID uuid.UUID
	Name        string
	Path        string
	ParentID    *uuid.UUID
	Position    int
}

// Domain errors for menu operations.
var (
	// ErrMenuNotFound indicates the requested menu entry does not exist.
	ErrMenuNotFound = apperrors.Wrap(apperrors.ErrNotFound, "menu not found")

	// ErrMenuAlreadyExists indicates the workspace already has an entry with the same path.
	ErrMenuAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "menu already exists")
)
