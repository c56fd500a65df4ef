// Package http provides HTTP middleware and handlers for identity operations.
package http

import (
	"context"

	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// WithUser stores an authenticated user in the context.
// This is typically called by the authentication middleware after a
// successful API-key verification.
func WithUser(ctx context.Context, user *identityDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves an authenticated user from the context.
// Returns (user, true) if a user is present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*identityDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*identityDomain.User)
	return user, ok
}
