package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// Authorization domain errors.
var (
	// ErrRuleNotFound indicates a revoke referenced a grant that does not exist.
	ErrRuleNotFound = errors.Wrap(errors.ErrNotFound, "rule not found")

	// ErrMembershipNotFound indicates a revoke referenced a membership edge that does not exist.
	ErrMembershipNotFound = errors.Wrap(errors.ErrNotFound, "membership not found")

	// ErrInvalidResource indicates a malformed resource descriptor: unknown kind,
	// empty path, or a workspace that does not match the call context. This is a
	// caller defect and fails fast rather than being treated as a deny.
	ErrInvalidResource = errors.Wrap(errors.ErrInvalidInput, "invalid resource descriptor")

	// ErrInvalidSubject indicates a malformed subject encoding.
	ErrInvalidSubject = errors.Wrap(errors.ErrInvalidInput, "invalid subject")
)
