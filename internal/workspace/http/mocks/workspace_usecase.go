// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
)

// MockWorkspaceUseCase is a mock implementation of WorkspaceUseCase for testing.
type MockWorkspaceUseCase struct {
	mock.Mock
}

// Create mocks the Create method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Create(
	ctx context.Context,
	input *workspaceDomain.CreateWorkspaceInput,
) (*workspaceDomain.Workspace, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Workspace), args.Error(1)
}

// Get mocks the Get method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspaceDomain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Workspace), args.Error(1)
}

// List mocks the List method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*workspaceDomain.Workspace, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Workspace), args.Error(1)
}

// Delete mocks the Delete method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// Exists mocks the Exists method of WorkspaceUseCase.
func (m *MockWorkspaceUseCase) Exists(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}
