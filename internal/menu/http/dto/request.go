// Package dto contains request and response types for the menu HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CreateMenuRequest represents a menu entry creation request.
type CreateMenuRequest struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	ParentID string `json:"parent_id"`
	Position int    `json:"position"`
}

// Validate validates the CreateMenuRequest fields.
func (r CreateMenuRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Path,
			validation.Required,
			customValidation.ResourcePath,
			validation.Length(1, 500),
		),
		validation.Field(&r.Position, validation.Min(0)),
	)
}
