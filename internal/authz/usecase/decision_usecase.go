// Package usecase implements business logic orchestration for authorization
// decisions and policy administration.
package usecase

import (
	"context"
	"fmt"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	authzService "github.com/allisson/gatekeeper/internal/authz/service"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// decisionUseCase implements DecisionUseCase against the rule fact base.
type decisionUseCase struct {
	ruleRepo        RuleRepository
	subjectResolver authzService.SubjectResolver
}

// Check evaluates an authorization request. Evaluation is a pure read of the
// fact base: no state is mutated and no decision is cached.
func (d *decisionUseCase) Check(
	ctx context.Context,
	principal authzDomain.Principal,
	resource authzDomain.Resource,
	action authzDomain.Action,
) (authzDomain.Decision, error) {
	if err := resource.Validate(); err != nil {
		return authzDomain.Deny(), err
	}
	if !action.IsValid() || action == authzDomain.ActionAll {
		// The wildcard is grantable but never requestable
		return authzDomain.Deny(), apperrors.Wrap(
			apperrors.ErrInvalidInput,
			fmt.Sprintf("invalid requested action %q", action),
		)
	}

	if principal.IsSuperuser {
		return authzDomain.Allow(authzDomain.ReasonSuperuser), nil
	}

	subjects, err := d.subjectResolver.EffectiveSubjects(ctx, resource.WorkspaceID, principal.UserID)
	if err != nil {
		return authzDomain.Deny(), apperrors.Wrap(err, "failed to resolve effective subjects")
	}

	rules, err := d.ruleRepo.ListBySubjects(ctx, resource.WorkspaceID, subjects)
	if err != nil {
		return authzDomain.Deny(), apperrors.Wrap(err, "failed to load applicable rules")
	}

	// Direct user grants take precedence over role grants; within a grant
	// class the first matching rule in insertion order wins.
	for _, rule := range rules {
		if rule.Subject.IsUser() && rule.Matches(resource, action) {
			return authzDomain.Allow(authzDomain.ReasonUserGrant), nil
		}
	}
	for _, rule := range rules {
		if rule.Subject.IsRole() && rule.Matches(resource, action) {
			return authzDomain.Allow(authzDomain.ReasonRoleGrant), nil
		}
	}

	return authzDomain.Deny(), nil
}

// NewDecisionUseCase creates a new DecisionUseCase with the provided dependencies.
func NewDecisionUseCase(
	ruleRepo RuleRepository,
	subjectResolver authzService.SubjectResolver,
) DecisionUseCase {
	return &decisionUseCase{
		ruleRepo:        ruleRepo,
		subjectResolver: subjectResolver,
	}
}
