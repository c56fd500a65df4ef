package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Resource is a typed, workspace-scoped resource descriptor.
// The canonical string form is "<kind>:<workspace_id>:<path>", e.g.
// "api:018f6a4e-...:workspaces/5/collections/9" or "data:018f6a4e-...:42".
type Resource struct {
	Kind        ResourceKind // Namespace partition (api, menu, data)
	WorkspaceID uuid.UUID    // Tenant isolation boundary
	Path        string       // Slash-separated path (api/menu) or object id (data)
}

// NewResource builds a validated resource descriptor.
func NewResource(kind ResourceKind, workspaceID uuid.UUID, path string) (Resource, error) {
	r := Resource{Kind: kind, WorkspaceID: workspaceID, Path: path}
	if err := r.Validate(); err != nil {
		return Resource{}, err
	}
	return r, nil
}

// ParseResource parses the canonical "<kind>:<workspace_id>:<path>" form.
// The path segment may itself contain colons; only the first two separators
// are structural.
func ParseResource(s string) (Resource, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Resource{}, apperrors.Wrap(ErrInvalidResource, fmt.Sprintf("malformed descriptor %q", s))
	}

	workspaceID, err := uuid.Parse(parts[1])
	if err != nil {
		return Resource{}, apperrors.Wrap(ErrInvalidResource, fmt.Sprintf("invalid workspace id %q", parts[1]))
	}

	return NewResource(ResourceKind(parts[0]), workspaceID, parts[2])
}

// Validate checks the descriptor is well-formed: known kind, non-nil workspace,
// non-empty normalized path.
func (r Resource) Validate() error {
	if !r.Kind.IsValid() {
		return apperrors.Wrap(ErrInvalidResource, fmt.Sprintf("unknown resource kind %q", r.Kind))
	}
	if r.WorkspaceID == uuid.Nil {
		return apperrors.Wrap(ErrInvalidResource, "workspace id is required")
	}
	if strings.TrimSpace(r.Path) == "" {
		return apperrors.Wrap(ErrInvalidResource, "path is required")
	}
	if strings.HasPrefix(r.Path, "/") || strings.HasSuffix(r.Path, "/") {
		return apperrors.Wrap(ErrInvalidResource, fmt.Sprintf("path %q must not have leading or trailing slashes", r.Path))
	}
	return nil
}

// String returns the canonical descriptor form.
func (r Resource) String() string {
	return fmt.Sprintf("%s:%s:%s", r.Kind, r.WorkspaceID, r.Path)
}
