package dto

import (
	"time"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// CheckResponse is the outcome of an explicit authorization check. Denials
// are deliberately uniform: no reason detail is exposed to the caller.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// PermissionResponse represents a granted rule in API responses.
type PermissionResponse struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// ListPermissionsResponse wraps the rules granted to one subject.
type ListPermissionsResponse struct {
	Permissions []PermissionResponse `json:"permissions"`
}

// ListRolesResponse wraps the roles a user holds in a workspace.
type ListRolesResponse struct {
	Roles []string `json:"roles"`
}

// MapRuleToResponse converts a domain rule to its API representation.
func MapRuleToResponse(rule *authzDomain.Rule) PermissionResponse {
	return PermissionResponse{
		ID:        rule.ID.String(),
		Subject:   rule.Subject.String(),
		Kind:      string(rule.Resource.Kind),
		Path:      rule.Resource.Path,
		Action:    string(rule.Action),
		CreatedAt: rule.CreatedAt,
	}
}

// MapRulesToListResponse converts a subject's rules to its API representation.
func MapRulesToListResponse(rules []*authzDomain.Rule) ListPermissionsResponse {
	response := ListPermissionsResponse{Permissions: make([]PermissionResponse, 0, len(rules))}
	for _, rule := range rules {
		response.Permissions = append(response.Permissions, MapRuleToResponse(rule))
	}
	return response
}
