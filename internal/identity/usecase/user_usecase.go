// Package usecase implements business logic orchestration for identity operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
	identityService "github.com/allisson/gatekeeper/internal/identity/service"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

// userUseCase implements UserUseCase for managing service users.
type userUseCase struct {
	userRepo          UserRepository
	credentialService identityService.CredentialService
}

// validateCreateUserInput validates user provisioning input.
func validateCreateUserInput(input *identityDomain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create provisions a new user with a generated API key.
// Returns the user ID and plain text key. The plain key is only returned once
// and must be securely transmitted to the user; the hashed version is stored.
func (u *userUseCase) Create(
	ctx context.Context,
	input *identityDomain.CreateUserInput,
) (*identityDomain.CreateUserOutput, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	plainKey, hashedKey, err := u.credentialService.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	user := &identityDomain.User{
		ID:          uuid.Must(uuid.NewV7()),
		Email:       strings.TrimSpace(strings.ToLower(input.Email)),
		Name:        strings.TrimSpace(input.Name),
		APIKeyHash:  hashedKey,
		IsSuperuser: input.IsSuperuser,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &identityDomain.CreateUserOutput{
		ID:          user.ID,
		PlainAPIKey: plainKey,
	}, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	return u.userRepo.Get(ctx, userID)
}

// Exists reports whether the user exists and is active.
func (u *userUseCase) Exists(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return apperrors.Wrap(identityDomain.ErrUserNotFound, "user is inactive")
	}
	return nil
}

// List retrieves users with pagination support.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Authenticate verifies a user's API key. Unknown users, inactive users, and
// mismatched keys all produce the same ErrInvalidCredentials so callers cannot
// distinguish which check failed.
func (u *userUseCase) Authenticate(
	ctx context.Context,
	userID uuid.UUID,
	plainAPIKey string,
) (*identityDomain.User, error) {
	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, identityDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, identityDomain.ErrInvalidCredentials
	}

	if !u.credentialService.CompareAPIKey(plainAPIKey, user.APIKeyHash) {
		return nil, identityDomain.ErrInvalidCredentials
	}

	return user, nil
}

// Deactivate performs a soft delete by setting IsActive to false.
func (u *userUseCase) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	user.IsActive = false

	return u.userRepo.Update(ctx, user)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	credentialService identityService.CredentialService,
) UserUseCase {
	return &userUseCase{
		userRepo:          userRepo,
		credentialService: credentialService,
	}
}
