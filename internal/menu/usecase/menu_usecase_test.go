package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

type mockMenuRepository struct {
	mock.Mock
}

func (m *mockMenuRepository) Create(ctx context.Context, menu *menuDomain.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *mockMenuRepository) Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error) {
	args := m.Called(ctx, menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuDomain.Menu), args.Error(1)
}

func (m *mockMenuRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*menuDomain.Menu, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menuDomain.Menu), args.Error(1)
}

func (m *mockMenuRepository) Delete(ctx context.Context, menuID uuid.UUID) error {
	args := m.Called(ctx, menuID)
	return args.Error(0)
}

func (m *mockMenuRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type mockDecisionUseCase struct {
	mock.Mock
}

func (m *mockDecisionUseCase) Check(
	ctx context.Context,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
) (authzDomain.Decision, error) {
	args := m.Called(ctx, principal, resource, action)
	return args.Get(0).(authzDomain.Decision), args.Error(1)
}

type mockWorkspaceChecker struct {
	mock.Mock
}

func (m *mockWorkspaceChecker) Exists(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func testMenu(workspaceID uuid.UUID, name, path string, position int) *menuDomain.Menu {
	return &menuDomain.Menu{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceID,
		Name:        name,
		Path:        path,
		Position:    position,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMenuUseCase_Create(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("creates a root entry", func(t *testing.T) {
		menuRepo := new(mockMenuRepository)
		menuRepo.On("Create", ctx, mock.MatchedBy(func(m *menuDomain.Menu) bool {
			return m.WorkspaceID == workspaceID && m.Path == "reports" && m.ParentID == nil
		})).Return(nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		useCase := NewMenuUseCase(menuRepo, nil, workspaces)
		menu, err := useCase.Create(ctx, &menuDomain.CreateMenuInput{
			WorkspaceID: workspaceID,
			Name:        "Reports",
			Path:        "reports",
		})

		require.NoError(t, err)
		assert.Equal(t, "Reports", menu.Name)
		menuRepo.AssertExpectations(t)
	})

	t.Run("child path must nest under the parent", func(t *testing.T) {
		parent := testMenu(workspaceID, "Reports", "reports", 0)

		menuRepo := new(mockMenuRepository)
		menuRepo.On("Get", ctx, parent.ID).Return(parent, nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		useCase := NewMenuUseCase(menuRepo, nil, workspaces)
		_, err := useCase.Create(ctx, &menuDomain.CreateMenuInput{
			WorkspaceID: workspaceID,
			Name:        "Billing",
			Path:        "billing",
			ParentID:    &parent.ID,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		menuRepo.AssertNotCalled(t, "Create")
	})

	t.Run("parent in another workspace is rejected", func(t *testing.T) {
		parent := testMenu(uuid.Must(uuid.NewV7()), "Reports", "reports", 0)

		menuRepo := new(mockMenuRepository)
		menuRepo.On("Get", ctx, parent.ID).Return(parent, nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		useCase := NewMenuUseCase(menuRepo, nil, workspaces)
		_, err := useCase.Create(ctx, &menuDomain.CreateMenuInput{
			WorkspaceID: workspaceID,
			Name:        "Monthly",
			Path:        "reports/monthly",
			ParentID:    &parent.ID,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("path with leading slash fails validation", func(t *testing.T) {
		useCase := NewMenuUseCase(new(mockMenuRepository), nil, new(mockWorkspaceChecker))
		_, err := useCase.Create(ctx, &menuDomain.CreateMenuInput{
			WorkspaceID: workspaceID,
			Name:        "Reports",
			Path:        "/reports",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown workspace is rejected", func(t *testing.T) {
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(apperrors.ErrNotFound)

		useCase := NewMenuUseCase(new(mockMenuRepository), nil, workspaces)
		_, err := useCase.Create(ctx, &menuDomain.CreateMenuInput{
			WorkspaceID: workspaceID,
			Name:        "Reports",
			Path:        "reports",
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestMenuUseCase_ListVisible(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())
	principal := authzDomain.Principal{UserID: userID}

	reports := testMenu(workspaceID, "Reports", "reports", 0)
	monthly := testMenu(workspaceID, "Monthly", "reports/monthly", 1)
	admin := testMenu(workspaceID, "Admin", "admin", 2)

	menuResource := func(path string) authzDomain.Resource {
		return authzDomain.Resource{
			Kind:        authzDomain.ResourceMenu,
			WorkspaceID: workspaceID,
			Path:        path,
		}
	}

	t.Run("keeps only readable entries in display order", func(t *testing.T) {
		menuRepo := new(mockMenuRepository)
		menuRepo.On("ListByWorkspace", ctx, workspaceID).
			Return([]*menuDomain.Menu{reports, monthly, admin}, nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		decisions := new(mockDecisionUseCase)
		decisions.On("Check", mock.Anything, principal, menuResource("reports"), authzDomain.ActionRead).
			Return(authzDomain.Allow(authzDomain.ReasonRoleGrant), nil)
		decisions.On("Check", mock.Anything, principal, menuResource("reports/monthly"), authzDomain.ActionRead).
			Return(authzDomain.Allow(authzDomain.ReasonRoleGrant), nil)
		decisions.On("Check", mock.Anything, principal, menuResource("admin"), authzDomain.ActionRead).
			Return(authzDomain.Deny(), nil)

		useCase := NewMenuUseCase(menuRepo, decisions, workspaces)
		visible, err := useCase.ListVisible(ctx, principal, workspaceID)

		require.NoError(t, err)
		require.Len(t, visible, 2)
		assert.Equal(t, "reports", visible[0].Path)
		assert.Equal(t, "reports/monthly", visible[1].Path)
	})

	t.Run("superuser sees everything", func(t *testing.T) {
		superuser := authzDomain.Principal{UserID: userID, IsSuperuser: true}

		menuRepo := new(mockMenuRepository)
		menuRepo.On("ListByWorkspace", ctx, workspaceID).
			Return([]*menuDomain.Menu{reports, admin}, nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		decisions := new(mockDecisionUseCase)
		decisions.On("Check", mock.Anything, superuser, mock.Anything, authzDomain.ActionRead).
			Return(authzDomain.Allow(authzDomain.ReasonSuperuser), nil)

		useCase := NewMenuUseCase(menuRepo, decisions, workspaces)
		visible, err := useCase.ListVisible(ctx, superuser, workspaceID)

		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("decision failure propagates", func(t *testing.T) {
		menuRepo := new(mockMenuRepository)
		menuRepo.On("ListByWorkspace", ctx, workspaceID).
			Return([]*menuDomain.Menu{reports}, nil)

		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", ctx, workspaceID).Return(nil)

		decisions := new(mockDecisionUseCase)
		decisions.On("Check", mock.Anything, principal, mock.Anything, authzDomain.ActionRead).
			Return(authzDomain.Deny(), assert.AnError)

		useCase := NewMenuUseCase(menuRepo, decisions, workspaces)
		_, err := useCase.ListVisible(ctx, principal, workspaceID)

		assert.Error(t, err)
	})
}
