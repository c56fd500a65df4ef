package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/metrics"
)

// decisionUseCaseWithMetrics decorates DecisionUseCase with metrics instrumentation.
type decisionUseCaseWithMetrics struct {
	next    DecisionUseCase
	metrics metrics.BusinessMetrics
}

// NewDecisionUseCaseWithMetrics wraps a DecisionUseCase with metrics recording.
func NewDecisionUseCaseWithMetrics(useCase DecisionUseCase, m metrics.BusinessMetrics) DecisionUseCase {
	return &decisionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Check records per-decision counters and durations. The status label carries
// the decision outcome (allow/deny) rather than success/error: a deny is a
// successful evaluation.
func (d *decisionUseCaseWithMetrics) Check(
	ctx context.Context,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
) (authzDomain.Decision, error) {
	start := time.Now()
	decision, err := d.next.Check(ctx, principal, resource, action)

	status := "deny"
	switch {
	case err != nil:
		status = "error"
	case decision.Allowed:
		status = "allow"
	}

	d.metrics.RecordOperation(ctx, "authz", "decision_check", status)
	d.metrics.RecordDuration(ctx, "authz", "decision_check", time.Since(start), status)

	return decision, err
}

// policyUseCaseWithMetrics decorates PolicyUseCase with metrics instrumentation.
type policyUseCaseWithMetrics struct {
	next    PolicyUseCase
	metrics metrics.BusinessMetrics
}

// NewPolicyUseCaseWithMetrics wraps a PolicyUseCase with metrics recording.
func NewPolicyUseCaseWithMetrics(useCase PolicyUseCase, m metrics.BusinessMetrics) PolicyUseCase {
	return &policyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the counter and duration for a policy administration operation.
func (p *policyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "authz", operation, status)
	p.metrics.RecordDuration(ctx, "authz", operation, time.Since(start), status)
}

// GrantPermission records metrics for permission grant operations.
func (p *policyUseCaseWithMetrics) GrantPermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	start := time.Now()
	err := p.next.GrantPermission(ctx, workspaceID, subject, resource, action)
	p.record(ctx, "permission_grant", start, err)
	return err
}

// RevokePermission records metrics for permission revoke operations.
func (p *policyUseCaseWithMetrics) RevokePermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	start := time.Now()
	err := p.next.RevokePermission(ctx, workspaceID, subject, resource, action)
	p.record(ctx, "permission_revoke", start, err)
	return err
}

// AssignRole records metrics for role assignment operations.
func (p *policyUseCaseWithMetrics) AssignRole(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	role string,
) error {
	start := time.Now()
	err := p.next.AssignRole(ctx, workspaceID, userID, role)
	p.record(ctx, "role_assign", start, err)
	return err
}

// UnassignRole records metrics for role unassignment operations.
func (p *policyUseCaseWithMetrics) UnassignRole(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	role string,
) error {
	start := time.Now()
	err := p.next.UnassignRole(ctx, workspaceID, userID, role)
	p.record(ctx, "role_unassign", start, err)
	return err
}

// ListSubjectPermissions records metrics for permission list operations.
func (p *policyUseCaseWithMetrics) ListSubjectPermissions(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
) ([]*authzDomain.Rule, error) {
	start := time.Now()
	rules, err := p.next.ListSubjectPermissions(ctx, workspaceID, subject)
	p.record(ctx, "permission_list", start, err)
	return rules, err
}

// ListUserRoles records metrics for role list operations.
func (p *policyUseCaseWithMetrics) ListUserRoles(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]string, error) {
	start := time.Now()
	roles, err := p.next.ListUserRoles(ctx, workspaceID, userID)
	p.record(ctx, "role_list", start, err)
	return roles, err
}
