package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
)

type mockWorkspaceRepository struct {
	mock.Mock
}

func (m *mockWorkspaceRepository) Create(ctx context.Context, workspace *workspaceDomain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *mockWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspaceDomain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Workspace), args.Error(1)
}

func (m *mockWorkspaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*workspaceDomain.Workspace, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Workspace), args.Error(1)
}

func (m *mockWorkspaceRepository) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type mockFactRemover struct {
	mock.Mock
}

func (m *mockFactRemover) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

func activeWorkspace(workspaceID uuid.UUID) *workspaceDomain.Workspace {
	return &workspaceDomain.Workspace{
		ID:        workspaceID,
		Name:      "payments",
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func newTestUseCase(
	workspaceRepo *mockWorkspaceRepository,
	ruleRemover, membershipRemover, menuRemover *mockFactRemover,
	txManager *mockTxManager,
) WorkspaceUseCase {
	return NewWorkspaceUseCase(workspaceRepo, ruleRemover, membershipRemover, menuRemover, txManager)
}

func TestWorkspaceUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active workspace", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Create", ctx, mock.MatchedBy(func(w *workspaceDomain.Workspace) bool {
			return w.Name == "payments" && w.IsActive && w.ID != uuid.Nil
		})).Return(nil)

		useCase := newTestUseCase(workspaceRepo, nil, nil, nil, nil)
		workspace, err := useCase.Create(ctx, &workspaceDomain.CreateWorkspaceInput{Name: " payments "})

		require.NoError(t, err)
		assert.Equal(t, "payments", workspace.Name)
		assert.True(t, workspace.IsActive)
		workspaceRepo.AssertExpectations(t)
	})

	t.Run("blank name fails validation", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)

		useCase := newTestUseCase(workspaceRepo, nil, nil, nil, nil)
		_, err := useCase.Create(ctx, &workspaceDomain.CreateWorkspaceInput{Name: "   "})

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		workspaceRepo.AssertNotCalled(t, "Create")
	})
}

func TestWorkspaceUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("cascades fact removal in one transaction", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(activeWorkspace(workspaceID), nil)
		workspaceRepo.On("Delete", ctx, workspaceID).Return(nil)

		ruleRemover := new(mockFactRemover)
		ruleRemover.On("DeleteByWorkspace", ctx, workspaceID).Return(nil)
		membershipRemover := new(mockFactRemover)
		membershipRemover.On("DeleteByWorkspace", ctx, workspaceID).Return(nil)
		menuRemover := new(mockFactRemover)
		menuRemover.On("DeleteByWorkspace", ctx, workspaceID).Return(nil)

		txManager := new(mockTxManager)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		useCase := newTestUseCase(workspaceRepo, ruleRemover, membershipRemover, menuRemover, txManager)
		err := useCase.Delete(ctx, workspaceID)

		require.NoError(t, err)
		ruleRemover.AssertExpectations(t)
		membershipRemover.AssertExpectations(t)
		menuRemover.AssertExpectations(t)
		workspaceRepo.AssertExpectations(t)
	})

	t.Run("unknown workspace is rejected before the transaction", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(nil, workspaceDomain.ErrWorkspaceNotFound)

		txManager := new(mockTxManager)

		useCase := newTestUseCase(workspaceRepo, new(mockFactRemover), new(mockFactRemover), new(mockFactRemover), txManager)
		err := useCase.Delete(ctx, workspaceID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		txManager.AssertNotCalled(t, "WithTx")
	})

	t.Run("fact removal failure aborts the workspace delete", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(activeWorkspace(workspaceID), nil)

		ruleRemover := new(mockFactRemover)
		ruleRemover.On("DeleteByWorkspace", ctx, workspaceID).Return(assert.AnError)

		txManager := new(mockTxManager)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil)

		useCase := newTestUseCase(workspaceRepo, ruleRemover, new(mockFactRemover), new(mockFactRemover), txManager)
		err := useCase.Delete(ctx, workspaceID)

		require.Error(t, err)
		workspaceRepo.AssertNotCalled(t, "Delete")
	})
}

func TestWorkspaceUseCase_Exists(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("active workspace exists", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(activeWorkspace(workspaceID), nil)

		useCase := newTestUseCase(workspaceRepo, nil, nil, nil, nil)
		assert.NoError(t, useCase.Exists(ctx, workspaceID))
	})

	t.Run("inactive workspace does not exist", func(t *testing.T) {
		workspace := activeWorkspace(workspaceID)
		workspace.IsActive = false

		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(workspace, nil)

		useCase := newTestUseCase(workspaceRepo, nil, nil, nil, nil)
		err := useCase.Exists(ctx, workspaceID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unknown workspace does not exist", func(t *testing.T) {
		workspaceRepo := new(mockWorkspaceRepository)
		workspaceRepo.On("Get", ctx, workspaceID).Return(nil, workspaceDomain.ErrWorkspaceNotFound)

		useCase := newTestUseCase(workspaceRepo, nil, nil, nil, nil)
		err := useCase.Exists(ctx, workspaceID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
