// Package domain defines the identity domain model: service users and their
// API-key credentials.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// User represents an authenticated principal of the service. The API key is
// static service-credential material hashed with Argon2id; there is no session
// or token issuance.
type User struct {
	ID          uuid.UUID
	Email       string
	Name        string
	APIKeyHash  string
	IsSuperuser bool // Superusers bypass authorization checks entirely
	IsActive    bool
	CreatedAt   time.Time
}

// CreateUserInput contains the parameters for provisioning a new user.
type CreateUserInput struct {
	Email       string
	Name        string
	IsSuperuser bool
}

// CreateUserOutput is returned once at provisioning time. PlainAPIKey is never
// stored and cannot be recovered later.
type CreateUserOutput struct {
	ID          uuid.UUID
	PlainAPIKey string
}

// Domain-specific errors for identity operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.Wrap(apperrors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates the presented API key does not match or
	// the user cannot authenticate.
	ErrInvalidCredentials = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
)
