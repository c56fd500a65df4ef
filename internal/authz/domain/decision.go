package domain

import (
	"github.com/google/uuid"
)

// Principal is the authenticated identity a decision is made for. It is
// supplied by the identity collaborator; the engine trusts it as verified.
type Principal struct {
	UserID      uuid.UUID
	IsSuperuser bool // Superusers bypass the fact base entirely
}

// DecisionReason explains which grant source produced an allow, or why the
// request was denied. Reasons are for audit logs and metrics only; callers
// receive a uniform denial with no reason detail.
type DecisionReason string

const (
	// ReasonSuperuser means the principal's superuser flag short-circuited the decision.
	ReasonSuperuser DecisionReason = "superuser"

	// ReasonUserGrant means a direct user grant (ACL) matched.
	ReasonUserGrant DecisionReason = "user_grant"

	// ReasonRoleGrant means a role grant (RBAC) matched via membership.
	ReasonRoleGrant DecisionReason = "role_grant"

	// ReasonNoMatchingRule means no applicable rule matched the request.
	ReasonNoMatchingRule DecisionReason = "no_matching_rule"

	// ReasonStoreError means the fact base could not be consulted and the
	// request was denied fail-closed.
	ReasonStoreError DecisionReason = "store_error"
)

// Decision is the outcome of an authorization check. A deny is a valid
// result, not an error.
type Decision struct {
	Allowed bool
	Reason  DecisionReason
}

// Allow builds an allow decision with the grant source that produced it.
func Allow(reason DecisionReason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

// Deny builds the deny decision.
func Deny() Decision {
	return Decision{Allowed: false, Reason: ReasonNoMatchingRule}
}

// DenyStoreError builds the fail-closed denial recorded when the fact base
// cannot be consulted. It never comes out of the engine itself; enforcement
// substitutes it for whatever partial decision accompanied the error.
func DenyStoreError() Decision {
	return Decision{Allowed: false, Reason: ReasonStoreError}
}
