package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// SubjectKind distinguishes the two grantable entity classes.
type SubjectKind string

const (
	// SubjectUser marks a direct user grant (ACL).
	SubjectUser SubjectKind = "user"

	// SubjectRole marks a role grant (RBAC). Role identifiers are opaque
	// names that are only meaningful inside one workspace.
	SubjectRole SubjectKind = "role"
)

// Subject is an entity a permission can be granted to: a user or a role.
// The canonical string form is "user:<uuid>" or "role:<name>".
type Subject struct {
	Kind SubjectKind
	ID   string
}

// UserSubject builds the subject for a user id.
func UserSubject(userID uuid.UUID) Subject {
	return Subject{Kind: SubjectUser, ID: userID.String()}
}

// RoleSubject builds the subject for a workspace-scoped role name.
func RoleSubject(role string) Subject {
	return Subject{Kind: SubjectRole, ID: role}
}

// ParseSubject parses the canonical "user:<uuid>" / "role:<name>" form.
func ParseSubject(s string) (Subject, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return Subject{}, apperrors.Wrap(ErrInvalidSubject, fmt.Sprintf("malformed subject %q", s))
	}

	switch SubjectKind(parts[0]) {
	case SubjectUser:
		userID, err := uuid.Parse(parts[1])
		if err != nil {
			return Subject{}, apperrors.Wrap(ErrInvalidSubject, fmt.Sprintf("invalid user id %q", parts[1]))
		}
		return UserSubject(userID), nil
	case SubjectRole:
		return RoleSubject(parts[1]), nil
	default:
		return Subject{}, apperrors.Wrap(ErrInvalidSubject, fmt.Sprintf("unknown subject kind %q", parts[0]))
	}
}

// String returns the canonical subject form.
func (s Subject) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.ID)
}

// IsUser reports whether the subject is a direct user grant target.
func (s Subject) IsUser() bool {
	return s.Kind == SubjectUser
}

// IsRole reports whether the subject is a role grant target.
func (s Subject) IsRole() bool {
	return s.Kind == SubjectRole
}
