// Package service provides credential services for identity operations.
package service

// CredentialService defines operations for API-key generation and validation.
// Implementations must use cryptographically secure random generation and
// Argon2id hashing.
type CredentialService interface {
	// GenerateAPIKey creates a new cryptographically secure random API key.
	// Returns both the plain text key (to be shared with the user once) and
	// the hashed version (to be stored in the database).
	GenerateAPIKey() (plainKey string, hashedKey string, err error)

	// HashAPIKey hashes a plain text API key for storage.
	HashAPIKey(plainKey string) (hashedKey string, err error)

	// CompareAPIKey compares a plain text API key against a stored hash.
	// Returns true on match. The comparison is constant-time.
	CompareAPIKey(plainKey string, hashedKey string) bool
}
