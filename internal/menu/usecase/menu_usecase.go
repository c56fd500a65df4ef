package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	authzUseCase "github.com/allisson/gatekeeper/internal/authz/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

type menuUseCase struct {
	menuRepo        MenuRepository
	decisionUseCase authzUseCase.DecisionUseCase
	workspaces      authzUseCase.WorkspaceChecker
}

func validateCreateMenuInput(input *menuDomain.CreateMenuInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required,
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&input.Path,
			validation.Required,
			appValidation.ResourcePath,
			validation.Length(1, 500),
		),
		validation.Field(&input.Position, validation.Min(0)),
	)
	return appValidation.WrapValidationError(err)
}

// Create adds a menu entry to a workspace. When a parent is given it must
// already exist in the same workspace.
func (m *menuUseCase) Create(ctx context.Context, input *menuDomain.CreateMenuInput) (*menuDomain.Menu, error) {
	if err := validateCreateMenuInput(input); err != nil {
		return nil, err
	}

	if err := m.workspaces.Exists(ctx, input.WorkspaceID); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := m.menuRepo.Get(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.WorkspaceID != input.WorkspaceID {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
				"parent menu belongs to another workspace")
		}
		if !strings.HasPrefix(input.Path, parent.Path+"/") {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
				fmt.Sprintf("path %q must nest under the parent path %q", input.Path, parent.Path))
		}
	}

	menu := &menuDomain.Menu{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: input.WorkspaceID,
		Name:        strings.TrimSpace(input.Name),
		Path:        input.Path,
		ParentID:    input.ParentID,
		Position:    input.Position,
		CreatedAt:   time.Now().UTC(),
	}

	if err := m.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}

	return menu, nil
}

// Get retrieves a menu entry by ID.
func (m *menuUseCase) Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error) {
	return m.menuRepo.Get(ctx, menuID)
}

// List retrieves every menu entry of the workspace in display order.
func (m *menuUseCase) List(ctx context.Context, workspaceID uuid.UUID) ([]*menuDomain.Menu, error) {
	if err := m.workspaces.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}
	return m.menuRepo.ListByWorkspace(ctx, workspaceID)
}

// Delete removes a menu entry. Children cascade at the storage layer.
func (m *menuUseCase) Delete(ctx context.Context, menuID uuid.UUID) error {
	return m.menuRepo.Delete(ctx, menuID)
}

// visibilityCheckConcurrency bounds the parallel decision checks per request.
const visibilityCheckConcurrency = 8

// ListVisible filters the workspace's menu entries down to the ones the
// principal holds a read grant for, preserving display order. Each entry is
// decided against its own menu resource, so a grant on a parent path exposes
// the whole subtree. Checks run concurrently since entries are independent.
func (m *menuUseCase) ListVisible(
	ctx context.Context,
	principal authzDomain.Principal,
	workspaceID uuid.UUID,
) ([]*menuDomain.Menu, error) {
	menus, err := m.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(visibilityCheckConcurrency)

	allowed := make([]bool, len(menus))
	for i, menu := range menus {
		group.Go(func() error {
			resource, err := authzDomain.NewResource(authzDomain.ResourceMenu, workspaceID, menu.Path)
			if err != nil {
				return err
			}

			decision, err := m.decisionUseCase.Check(groupCtx, principal, resource, authzDomain.ActionRead)
			if err != nil {
				return err
			}
			allowed[i] = decision.Allowed
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	visible := make([]*menuDomain.Menu, 0, len(menus))
	for i, menu := range menus {
		if allowed[i] {
			visible = append(visible, menu)
		}
	}

	return visible, nil
}

// NewMenuUseCase creates a new menu use case.
func NewMenuUseCase(
	menuRepo MenuRepository,
	decisionUseCase authzUseCase.DecisionUseCase,
	workspaces authzUseCase.WorkspaceChecker,
) MenuUseCase {
	return &menuUseCase{
		menuRepo:        menuRepo,
		decisionUseCase: decisionUseCase,
		workspaces:      workspaces,
	}
}
