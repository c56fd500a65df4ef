// Package dto contains request and response types for the workspace HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CreateWorkspaceRequest represents a workspace creation request.
type CreateWorkspaceRequest struct {
	Name string `json:"name"`
}

// Validate validates the CreateWorkspaceRequest fields.
func (r CreateWorkspaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
