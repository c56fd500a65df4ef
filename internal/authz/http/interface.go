// Package http implements the enforcement point and policy administration
// endpoints of the authorization engine.
package http

import (
	"context"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
)

// DecisionRecorder persists the audit trail of authorization decisions.
// Recording is best-effort from the enforcement point's perspective: a
// recorder failure is logged but never changes the decision outcome.
type DecisionRecorder interface {
	RecordDecision(
		ctx context.Context,
		requestID string,
		principal authzDomain.Principal,
		resource authzDomain.Resource,
		action authzDomain.Action,
		decision authzDomain.Decision,
	) error
}
