// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase for testing.
type MockAuditLogUseCase struct {
	mock.Mock
}

// RecordDecision mocks the RecordDecision method of AuditLogUseCase.
func (m *MockAuditLogUseCase) RecordDecision(
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

// List mocks the List method of AuditLogUseCase.
func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
	offset, limit int,
) ([]*auditlogDomain.AuditLog, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditlogDomain.AuditLog), args.Error(1)
}

// Verify mocks the Verify method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Verify(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
) (*auditlogDomain.VerifyReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditlogDomain.VerifyReport), args.Error(1)
}

// Clean mocks the Clean method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Clean(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
