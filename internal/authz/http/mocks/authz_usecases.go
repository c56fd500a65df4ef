// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// MockDecisionUseCase is a mock implementation of DecisionUseCase for testing.
type MockDecisionUseCase struct {
	mock.Mock
}

// Check mocks the Check method of DecisionUseCase.
func (m *MockDecisionUseCase) Check(
	ctx context.Context,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
) (authzDomain.Decision, error) {
	args := m.Called(ctx, principal, resource, action)
	return args.Get(0).(authzDomain.Decision), args.Error(1)
}

// MockPolicyUseCase is a mock implementation of PolicyUseCase for testing.
type MockPolicyUseCase struct {
	mock.Mock
}

// GrantPermission mocks the GrantPermission method of PolicyUseCase.
func (m *MockPolicyUseCase) GrantPermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	args := m.Called(ctx, workspaceID, subject, resource, action)
	return args.Error(0)
}

// RevokePermission mocks the RevokePermission method of PolicyUseCase.
func (m *MockPolicyUseCase) RevokePermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	args := m.Called(ctx, workspaceID, subject, resource, action)
	return args.Error(0)
}

// AssignRole mocks the AssignRole method of PolicyUseCase.
func (m *MockPolicyUseCase) AssignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

// UnassignRole mocks the UnassignRole method of PolicyUseCase.
func (m *MockPolicyUseCase) UnassignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

// ListSubjectPermissions mocks the ListSubjectPermissions method of PolicyUseCase.
func (m *MockPolicyUseCase) ListSubjectPermissions(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
) ([]*authzDomain.Rule, error) {
	args := m.Called(ctx, workspaceID, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authzDomain.Rule), args.Error(1)
}

// ListUserRoles mocks the ListUserRoles method of PolicyUseCase.
func (m *MockPolicyUseCase) ListUserRoles(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]string, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDecisionRecorder is a mock implementation of DecisionRecorder for testing.
type MockDecisionRecorder struct {
	mock.Mock
}

// RecordDecision mocks the RecordDecision method of DecisionRecorder.
func (m *MockDecisionRecorder) RecordDecision(
	ctx context.Context,
	requestID string,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
	decision authzDomain.Decision,
) error {
	args := m.Called(ctx, requestID, principal, resource, action, decision)
	return args.Error(0)
}
