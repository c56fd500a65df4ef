// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

// MockMenuUseCase is a mock implementation of MenuUseCase for testing.
type MockMenuUseCase struct {
	mock.Mock
}

// Create mocks the Create method of MenuUseCase.
func (m *MockMenuUseCase) Create(
	ctx context.Context,
	input *menuDomain.CreateMenuInput,
) (*menuDomain.Menu, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuDomain.Menu), args.Error(1)
}

// Get mocks the Get method of MenuUseCase.
func (m *MockMenuUseCase) Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error) {
	args := m.Called(ctx, menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menuDomain.Menu), args.Error(1)
}

// List mocks the List method of MenuUseCase.
func (m *MockMenuUseCase) List(ctx context.Context, workspaceID uuid.UUID) ([]*menuDomain.Menu, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menuDomain.Menu), args.Error(1)
}

// Delete mocks the Delete method of MenuUseCase.
func (m *MockMenuUseCase) Delete(ctx context.Context, menuID uuid.UUID) error {
	args := m.Called(ctx, menuID)
	return args.Error(0)
}

// ListVisible mocks the ListVisible method of MenuUseCase.
func (m *MockMenuUseCase) ListVisible(
	ctx context.Context,
	principal authzDomain.Principal,
	workspaceID uuid.UUID,
) ([]*menuDomain.Menu, error) {
	args := m.Called(ctx, principal, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menuDomain.Menu), args.Error(1)
}
