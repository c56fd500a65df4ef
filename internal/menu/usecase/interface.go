// Package usecase implements menu business logic, including permission-aware
// menu visibility.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

// MenuRepository defines the interface for menu data access.
type MenuRepository interface {
	// Create inserts a new menu entry. Returns ErrMenuAlreadyExists when the
	// workspace already has an entry with the same path.
	Create(ctx context.Context, menu *menuDomain.Menu) error

	// Get retrieves a menu entry by ID. Returns ErrMenuNotFound if not found.
	Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error)

	// ListByWorkspace retrieves the workspace's menu entries in display order.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*menuDomain.Menu, error)

	// Delete removes a menu entry. Returns ErrMenuNotFound if it does not exist.
	Delete(ctx context.Context, menuID uuid.UUID) error

	// DeleteByWorkspace removes every menu entry in the workspace.
	DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

// MenuUseCase defines the interface for menu business operations.
type MenuUseCase interface {
	// Create adds a menu entry to a workspace.
	Create(ctx context.Context, input *menuDomain.CreateMenuInput) (*menuDomain.Menu, error)

	// Get retrieves a menu entry by ID.
	Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error)

	// List retrieves every menu entry of the workspace in display order.
	List(ctx context.Context, workspaceID uuid.UUID) ([]*menuDomain.Menu, error)

	// Delete removes a menu entry.
	Delete(ctx context.Context, menuID uuid.UUID) error

	// ListVisible retrieves the workspace's menu entries the principal may
	// read, preserving display order. Superusers see everything.
	ListVisible(
		ctx context.Context,
		principal authzDomain.Principal,
		workspaceID uuid.UUID,
	) ([]*menuDomain.Menu, error)
}
