// Package service provides technical services for authorization decisions.
package service

import (
	"context"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// SubjectResolver expands an authenticated user into the full subject set a
// decision must consider inside one workspace: the user's own subject plus one
// role subject per membership edge.
//
// Resolution happens on every check; implementations must not cache role sets
// across calls, so a revoked membership takes effect on the next decision.
type SubjectResolver interface {
	// EffectiveSubjects returns the subjects the user acts as in the workspace.
	// The user subject is always first, followed by role subjects in
	// membership insertion order.
	EffectiveSubjects(ctx context.Context, workspaceID, userID uuid.UUID) ([]authzDomain.Subject, error)
}

// RoleLister lists the roles a user holds in one workspace.
type RoleLister interface {
	ListRolesByUser(ctx context.Context, workspaceID, userID uuid.UUID) ([]string, error)
}
