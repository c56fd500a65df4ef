// Package usecase defines business logic interfaces for identity operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user.
	// Returns ErrUserAlreadyExists if the email is already taken.
	Create(ctx context.Context, user *identityDomain.User) error

	// Update modifies an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *identityDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*identityDomain.User, error)

	// List retrieves users ordered by id with pagination support.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)
}

// UserUseCase defines business logic operations for managing service users.
type UserUseCase interface {
	// Create provisions a new user with a generated API key. The plain key is
	// only returned once; the hashed version is stored.
	Create(ctx context.Context, input *identityDomain.CreateUserInput) (*identityDomain.CreateUserOutput, error)

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// Exists reports whether the user exists and is active. Returns an error
	// wrapping ErrNotFound when the user is unknown or deactivated.
	Exists(ctx context.Context, userID uuid.UUID) error

	// List retrieves users with pagination support.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)

	// Authenticate verifies a user's API key. Returns the user on success and
	// ErrInvalidCredentials when the key does not match or the user is
	// inactive or unknown.
	Authenticate(ctx context.Context, userID uuid.UUID, plainAPIKey string) (*identityDomain.User, error)

	// Deactivate performs a soft delete by setting IsActive to false,
	// preventing authentication while preserving the user record.
	// Returns ErrUserNotFound if the user does not exist.
	Deactivate(ctx context.Context, userID uuid.UUID) error
}
