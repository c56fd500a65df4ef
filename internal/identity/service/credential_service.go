package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// credentialService implements CredentialService using Argon2id hashing.
type credentialService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateAPIKey creates a new cryptographically secure 32-byte random key.
// The key is base64-encoded for easy transmission and storage.
func (s *credentialService) GenerateAPIKey() (plainKey string, hashedKey string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random api key")
	}

	plainKey = base64.URLEncoding.EncodeToString(randomBytes)

	hashedKey, err = s.HashAPIKey(plainKey)
	if err != nil {
		return "", "", err
	}

	return plainKey, hashedKey, nil
}

// HashAPIKey hashes a plain text API key using Argon2id.
func (s *credentialService) HashAPIKey(plainKey string) (hashedKey string, err error) {
	hashedKey, err = s.hasher.Hash([]byte(plainKey))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash api key")
	}
	return hashedKey, nil
}

// CompareAPIKey performs a constant-time comparison between a plain key and its hash.
func (s *credentialService) CompareAPIKey(plainKey string, hashedKey string) bool {
	ok, err := s.hasher.Verify([]byte(plainKey), hashedKey)
	if err != nil {
		return false
	}
	return ok
}

// NewCredentialService creates a new CredentialService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewCredentialService() CredentialService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &credentialService{
		hasher: hasher,
	}
}
