package dto

import (
	"time"

	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
)

// CreateUserResponse is returned once at provisioning time and carries the
// plain API key. The key cannot be recovered later.
type CreateUserResponse struct {
	ID     string `json:"id"`
	APIKey string `json:"api_key"`
}

// UserResponse represents a user in API responses. The API key hash is never
// exposed.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// MapUserToResponse converts a domain user to its API representation.
func MapUserToResponse(user *identityDomain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		IsSuperuser: user.IsSuperuser,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// MapUsersToListResponse converts a page of domain users to its API representation.
func MapUsersToListResponse(users []*identityDomain.User) ListUsersResponse {
	response := ListUsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, user := range users {
		response.Users = append(response.Users, MapUserToResponse(user))
	}
	return response
}
