// Package usecase implements workspace business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
)

// WorkspaceRepository defines the interface for workspace data access.
type WorkspaceRepository interface {
	// Create inserts a new workspace.
	Create(ctx context.Context, workspace *workspaceDomain.Workspace) error

	// Get retrieves a workspace by ID. Returns ErrWorkspaceNotFound if not found.
	Get(ctx context.Context, workspaceID uuid.UUID) (*workspaceDomain.Workspace, error)

	// List retrieves workspaces ordered by id with pagination support.
	List(ctx context.Context, offset, limit int) ([]*workspaceDomain.Workspace, error)

	// Delete removes a workspace. Returns ErrWorkspaceNotFound if it does not exist.
	Delete(ctx context.Context, workspaceID uuid.UUID) error
}

// FactRemover removes all policy facts of a given kind that belong to a
// workspace. Rule, membership, and menu repositories satisfy it.
type FactRemover interface {
	DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

// TxManager defines the interface for transaction management.
type TxManager interface {
	// WithTx executes fn within a database transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WorkspaceUseCase defines the interface for workspace business operations.
type WorkspaceUseCase interface {
	// Create provisions a new workspace.
	Create(ctx context.Context, input *workspaceDomain.CreateWorkspaceInput) (*workspaceDomain.Workspace, error)

	// Get retrieves a workspace by ID.
	Get(ctx context.Context, workspaceID uuid.UUID) (*workspaceDomain.Workspace, error)

	// List retrieves workspaces with pagination support.
	List(ctx context.Context, offset, limit int) ([]*workspaceDomain.Workspace, error)

	// Delete removes a workspace together with every rule, membership, and
	// menu entry scoped to it, in a single transaction.
	Delete(ctx context.Context, workspaceID uuid.UUID) error

	// Exists reports whether the workspace exists and is active. Returns an
	// error wrapping ErrNotFound otherwise.
	Exists(ctx context.Context, workspaceID uuid.UUID) error
}
