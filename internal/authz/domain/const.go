// Package domain defines the authorization domain model: workspace-scoped
// subjects, typed resources, policy rules, role memberships, and decisions.
// Rules combine role-based grants (RBAC) and direct user grants (ACL); every
// fact is scoped to exactly one workspace and never crosses that boundary.
package domain

// Action defines the types of operations a rule can grant on a resource.
type Action string

const (
	// ActionRead allows reading resource data.
	ActionRead Action = "read"

	// ActionWrite allows creating or updating resource data.
	ActionWrite Action = "write"

	// ActionDelete allows removing resource data.
	ActionDelete Action = "delete"

	// ActionExecute allows triggering resource operations (e.g., running a dataset job).
	ActionExecute Action = "execute"

	// ActionAll is the wildcard action: a rule carrying it grants every concrete action.
	ActionAll Action = "*"
)

// IsValid reports whether the action is one of the known actions or the wildcard.
func (a Action) IsValid() bool {
	switch a {
	case ActionRead, ActionWrite, ActionDelete, ActionExecute, ActionAll:
		return true
	}
	return false
}

// Covers reports whether a rule action satisfies a requested action.
// The wildcard covers every concrete action; concrete actions only cover themselves.
func (a Action) Covers(requested Action) bool {
	return a == ActionAll || a == requested
}

// ResourceKind partitions the resource namespace. A grant on one kind never
// matches a resource of another kind.
type ResourceKind string

const (
	// ResourceAPI identifies API route resources (hierarchical paths).
	ResourceAPI ResourceKind = "api"

	// ResourceMenu identifies menu node resources (hierarchical paths).
	ResourceMenu ResourceKind = "menu"

	// ResourceData identifies data objects (collections and datasets).
	// Data resources are leaves: they never match hierarchically.
	ResourceData ResourceKind = "data"
)

// IsValid reports whether the resource kind is one of the known kinds.
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceAPI, ResourceMenu, ResourceData:
		return true
	}
	return false
}

// Hierarchical reports whether resources of this kind nest: a grant on a
// parent path also covers descendant paths. Data objects do not nest.
func (k ResourceKind) Hierarchical() bool {
	return k == ResourceAPI || k == ResourceMenu
}
