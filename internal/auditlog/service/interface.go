// Package service implements audit log signing: HMAC-SHA256 over a canonical
// record encoding, keyed by a KMS-unwrapped signing key.
package service

import (
	"context"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
)

// Signer signs and verifies audit log records.
type Signer interface {
	// Sign computes the signature over the record's canonical encoding.
	// The Signature field itself is not part of the signed content.
	Sign(log *auditlogDomain.AuditLog) ([]byte, error)

	// Verify checks the record's signature against its content.
	// Returns ErrSignatureInvalid on mismatch.
	Verify(log *auditlogDomain.AuditLog) error
}

// KeyUnwrapper recovers the plaintext signing key from its wrapped (KMS
// encrypted) form at startup.
type KeyUnwrapper interface {
	UnwrapKey(ctx context.Context, keyURI string, wrappedKey []byte) ([]byte, error)
}
