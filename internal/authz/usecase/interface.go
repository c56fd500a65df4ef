// Package usecase defines business logic interfaces for authorization decisions
// and policy administration.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// RuleRepository defines persistence operations for policy rules.
// Implementations must support transaction-aware operations via context propagation.
type RuleRepository interface {
	// Create stores a new rule. Re-adding an identical fact is a no-op.
	Create(ctx context.Context, rule *authzDomain.Rule) error

	// Delete removes the rule matching the exact fact tuple.
	// Returns ErrRuleNotFound if no such grant exists.
	Delete(
		ctx context.Context,
		workspaceID uuid.UUID,
		subject authzDomain.Subject,
		resource authzDomain.Resource,
		action authzDomain.Action,
	) error

	// ListBySubjects retrieves the workspace's rules for the subject set,
	// ordered by insertion.
	ListBySubjects(
		ctx context.Context,
		workspaceID uuid.UUID,
		subjects []authzDomain.Subject,
	) ([]*authzDomain.Rule, error)

	// DeleteByWorkspace removes every rule in the workspace.
	DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

// MembershipRepository defines persistence operations for role membership edges.
// Implementations must support transaction-aware operations via context propagation.
type MembershipRepository interface {
	// Create stores a new membership edge. Re-adding an existing edge is a no-op.
	Create(ctx context.Context, membership *authzDomain.Membership) error

	// Delete removes a membership edge.
	// Returns ErrMembershipNotFound if the edge does not exist.
	Delete(ctx context.Context, workspaceID, userID uuid.UUID, role string) error

	// ListRolesByUser retrieves the roles a user holds in the workspace.
	ListRolesByUser(ctx context.Context, workspaceID, userID uuid.UUID) ([]string, error)

	// DeleteByWorkspace removes every membership edge in the workspace.
	DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error
}

// WorkspaceChecker verifies a workspace exists and is active before policy
// facts are attached to it. Returns an error wrapping ErrNotFound when the
// workspace is unknown or inactive.
type WorkspaceChecker interface {
	Exists(ctx context.Context, workspaceID uuid.UUID) error
}

// UserChecker verifies a user exists and is active before policy facts
// reference them. Returns an error wrapping ErrNotFound when the user is
// unknown or deactivated.
type UserChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) error
}

// DecisionUseCase answers authorization checks against the policy fact base.
type DecisionUseCase interface {
	// Check evaluates whether the principal may perform the action on the
	// resource. The decision order is fixed: superuser bypass, then direct
	// user grants, then role grants, then deny. A deny is a valid decision,
	// not an error; errors signal the fact base could not be consulted and
	// callers must treat them as deny.
	Check(
		ctx context.Context,
		principal authzDomain.Principal,
		resource authzDomain.Resource,
		action authzDomain.Action,
	) (authzDomain.Decision, error)
}

// PolicyUseCase implements policy administration: granting and revoking
// permissions for users and roles, and managing role memberships. All
// mutations are idempotent except revocations of absent facts, which report
// not-found.
type PolicyUseCase interface {
	// GrantPermission records a rule giving the subject the action on the
	// resource. Granting an already-present fact is a no-op.
	GrantPermission(
		ctx context.Context,
		workspaceID uuid.UUID,
		subject authzDomain.Subject,
		resource authzDomain.Resource,
		action authzDomain.Action,
	) error

	// RevokePermission removes a previously granted rule.
	// Returns ErrRuleNotFound if the grant does not exist.
	RevokePermission(
		ctx context.Context,
		workspaceID uuid.UUID,
		subject authzDomain.Subject,
		resource authzDomain.Resource,
		action authzDomain.Action,
	) error

	// AssignRole adds a role membership edge for the user in the workspace.
	// Assigning an already-held role is a no-op.
	AssignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error

	// UnassignRole removes a role membership edge.
	// Returns ErrMembershipNotFound if the user does not hold the role.
	UnassignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error

	// ListSubjectPermissions retrieves the rules granted directly to the
	// subject in the workspace, in insertion order.
	ListSubjectPermissions(
		ctx context.Context,
		workspaceID uuid.UUID,
		subject authzDomain.Subject,
	) ([]*authzDomain.Rule, error)

	// ListUserRoles retrieves the roles the user holds in the workspace.
	ListUserRoles(ctx context.Context, workspaceID, userID uuid.UUID) ([]string, error)
}
