package service

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MembershipSubjectResolver resolves effective subjects from the membership
// fact base.
type MembershipSubjectResolver struct {
	roles RoleLister
}

// EffectiveSubjects returns the user subject plus a role subject for every
// role the user holds in the workspace. Memberships in other workspaces never
// contribute subjects here.
func (m *MembershipSubjectResolver) EffectiveSubjects(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]authzDomain.Subject, error) {
	roles, err := m.roles.ListRolesByUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user roles")
	}

	subjects := make([]authzDomain.Subject, 0, len(roles)+1)
	subjects = append(subjects, authzDomain.UserSubject(userID))
	for _, role := range roles {
		subjects = append(subjects, authzDomain.RoleSubject(role))
	}

	return subjects, nil
}

// NewMembershipSubjectResolver creates a SubjectResolver backed by the
// membership repository.
func NewMembershipSubjectResolver(roles RoleLister) *MembershipSubjectResolver {
	return &MembershipSubjectResolver{roles: roles}
}
