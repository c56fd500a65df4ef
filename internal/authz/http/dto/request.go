// Package dto contains request and response types for the authorization HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CheckRequest represents an explicit authorization check for the calling
// principal. The workspace comes from the URL path.
type CheckRequest struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Action string `json:"action"`
}

// Validate validates the CheckRequest fields. Kind, action, and resource
// semantics are enforced by the decision engine; this only rejects requests
// that are structurally broken.
func (r CheckRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Path, validation.Required, customValidation.ResourcePath),
		validation.Field(&r.Action, validation.Required, customValidation.NotBlank),
	)
}

// PermissionRequest represents a permission grant or revocation. The subject
// uses the canonical "user:<uuid>" / "role:<name>" form.
type PermissionRequest struct {
	Subject string `json:"subject"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Action  string `json:"action"`
}

// Validate validates the PermissionRequest fields.
func (r PermissionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Kind, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Path, validation.Required, customValidation.ResourcePath),
		validation.Field(&r.Action, validation.Required, customValidation.NotBlank),
	)
}

// RoleMembershipRequest represents a role assignment or unassignment for a user.
type RoleMembershipRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Validate validates the RoleMembershipRequest fields.
func (r RoleMembershipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Role, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
	)
}
