package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// policyUseCase implements PolicyUseCase for administering the fact base.
type policyUseCase struct {
	ruleRepo       RuleRepository
	membershipRepo MembershipRepository
	workspaces     WorkspaceChecker
	users          UserChecker
}

// GrantPermission validates and records a rule fact. The resource's workspace
// must match the administration target workspace and must exist; a grant to a
// user subject additionally requires the user to exist. Revocation has no
// user check so grants can still be cleaned up after deactivation.
func (p *policyUseCase) GrantPermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	if err := p.validateFact(ctx, workspaceID, subject, resource, action); err != nil {
		return err
	}

	if subject.Kind == authzDomain.SubjectUser {
		userID, err := uuid.Parse(subject.ID)
		if err != nil {
			return apperrors.Wrap(authzDomain.ErrInvalidSubject, fmt.Sprintf("invalid user id %q", subject.ID))
		}
		if err := p.users.Exists(ctx, userID); err != nil {
			return err
		}
	}

	rule := &authzDomain.Rule{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceID,
		Subject:     subject,
		Resource:    resource,
		Action:      action,
		CreatedAt:   time.Now().UTC(),
	}

	return p.ruleRepo.Create(ctx, rule)
}

// RevokePermission removes a rule fact.
// Returns ErrRuleNotFound if the grant does not exist.
func (p *policyUseCase) RevokePermission(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	if err := p.validateFact(ctx, workspaceID, subject, resource, action); err != nil {
		return err
	}

	return p.ruleRepo.Delete(ctx, workspaceID, subject, resource, action)
}

// AssignRole records a membership edge. The user must exist and be active.
func (p *policyUseCase) AssignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	if err := p.validateMembership(ctx, workspaceID, userID, role); err != nil {
		return err
	}

	if err := p.users.Exists(ctx, userID); err != nil {
		return err
	}

	membership := &authzDomain.Membership{
		UserID:      userID,
		Role:        role,
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UTC(),
	}

	return p.membershipRepo.Create(ctx, membership)
}

// UnassignRole removes a membership edge.
// Returns ErrMembershipNotFound if the user does not hold the role.
func (p *policyUseCase) UnassignRole(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	if err := p.validateMembership(ctx, workspaceID, userID, role); err != nil {
		return err
	}

	return p.membershipRepo.Delete(ctx, workspaceID, userID, role)
}

// ListSubjectPermissions retrieves the rules granted directly to the subject.
func (p *policyUseCase) ListSubjectPermissions(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
) ([]*authzDomain.Rule, error) {
	if err := p.workspaces.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}

	return p.ruleRepo.ListBySubjects(ctx, workspaceID, []authzDomain.Subject{subject})
}

// ListUserRoles retrieves the roles the user holds in the workspace.
func (p *policyUseCase) ListUserRoles(ctx context.Context, workspaceID, userID uuid.UUID) ([]string, error) {
	if err := p.workspaces.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}

	return p.membershipRepo.ListRolesByUser(ctx, workspaceID, userID)
}

// validateFact checks a rule fact tuple before it touches the store.
func (p *policyUseCase) validateFact(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	if err := resource.Validate(); err != nil {
		return err
	}
	if resource.WorkspaceID != workspaceID {
		return apperrors.Wrap(
			authzDomain.ErrInvalidResource,
			"resource workspace does not match the target workspace",
		)
	}
	if !action.IsValid() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("invalid action %q", action))
	}
	if _, err := authzDomain.ParseSubject(subject.String()); err != nil {
		return err
	}

	return p.workspaces.Exists(ctx, workspaceID)
}

// validateMembership checks a membership edge before it touches the store.
func (p *policyUseCase) validateMembership(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	if strings.TrimSpace(role) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "role is required")
	}

	return p.workspaces.Exists(ctx, workspaceID)
}

// NewPolicyUseCase creates a new PolicyUseCase with the provided dependencies.
func NewPolicyUseCase(
	ruleRepo RuleRepository,
	membershipRepo MembershipRepository,
	workspaces WorkspaceChecker,
	users UserChecker,
) PolicyUseCase {
	return &policyUseCase{
		ruleRepo:       ruleRepo,
		membershipRepo: membershipRepo,
		workspaces:     workspaces,
		users:          users,
	}
}
