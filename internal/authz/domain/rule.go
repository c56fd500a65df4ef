package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rule is a single policy fact: subject may perform action on resources
// matching the descriptor, inside one workspace. A rule whose subject is a
// user is an ACL grant; a rule whose subject is a role is an RBAC grant.
type Rule struct {
	ID          uuid.UUID // Unique identifier (UUIDv7, preserves insertion order)
	WorkspaceID uuid.UUID
	Subject     Subject
	Resource    Resource // Resource pattern the rule grants access to
	Action      Action   // Concrete action or ActionAll
	CreatedAt   time.Time
}

// matchPath checks if the requested path satisfies the rule path pattern.
//
// Matching rules:
//   - "*" matches any path (grant-everything inside the kind+workspace partition)
//   - Exact match: "workspaces/5" matches only "workspaces/5"
//   - Hierarchical match: "workspaces/5" also matches "workspaces/5/collections/9",
//     but only on segment boundaries ("workspaces/55" does NOT match)
//
// The hierarchical arm is only consulted for kinds that nest (api, menu).
func matchPath(rulePath, requestPath string, hierarchical bool) bool {
	if rulePath == "*" {
		return true
	}
	if rulePath == requestPath {
		return true
	}
	if hierarchical {
		return strings.HasPrefix(requestPath, rulePath+"/")
	}
	return false
}

// Matches decides whether a concrete (resource, action) pair satisfies this
// rule. All four checks must hold; they run cheapest and most-discriminating
// first (kind, then workspace, then path, then action).
//
// The workspace check is re-done here even though the store only hands out
// rules for the decision's workspace: a rule must never match a resource in
// another tenant regardless of how it was loaded.
func (r *Rule) Matches(resource Resource, action Action) bool {
	if r.Resource.Kind != resource.Kind {
		return false
	}
	if r.WorkspaceID != resource.WorkspaceID || r.Resource.WorkspaceID != resource.WorkspaceID {
		return false
	}
	if !matchPath(r.Resource.Path, resource.Path, resource.Kind.Hierarchical()) {
		return false
	}
	return r.Action.Covers(action)
}

// Membership is the (user, role, workspace) edge that lets RBAC rules apply
// to a user. Roles are opaque names scoped to their workspace.
type Membership struct {
	UserID      uuid.UUID
	Role        string
	WorkspaceID uuid.UUID
	CreatedAt   time.Time
}
