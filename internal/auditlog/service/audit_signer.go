package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// hkdfInfo binds derived keys to this purpose; changing it invalidates every
// existing signature.
const hkdfInfo = "gatekeeper/audit-log/v1"

// hmacSigner signs records with HMAC-SHA256. The signing key is derived from
// the unwrapped master key with HKDF-SHA256 so the master key itself never
// touches the MAC.
type hmacSigner struct {
	key []byte
}

// NewHMACSigner derives the signing key from the master key material and
// returns a ready signer. The master key must be at least 32 bytes.
func NewHMACSigner(masterKey []byte) (Signer, error) {
	if len(masterKey) < 32 {
		return nil, fmt.Errorf("audit signing key must be at least 32 bytes, got %d", len(masterKey))
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey, nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive audit signing key: %w", err)
	}

	return &hmacSigner{key: key}, nil
}

// canonicalEncode writes the signed record fields in a fixed, unambiguous
// order. Every variable-length field is length-prefixed so no two records can
// encode to the same bytes.
func canonicalEncode(w io.Writer, log *auditlogDomain.AuditLog) {
	writeBytes := func(b []byte) {
		_ = binary.Write(w, binary.BigEndian, uint32(len(b)))
		_, _ = w.Write(b)
	}

	writeBytes(log.ID[:])
	writeBytes([]byte(log.RequestID))
	writeBytes(log.PrincipalID[:])
	writeBytes(log.WorkspaceID[:])
	writeBytes([]byte(log.Resource))
	writeBytes([]byte(log.Action))
	allowed := byte(0)
	if log.Allowed {
		allowed = 1
	}
	_, _ = w.Write([]byte{allowed})
	writeBytes([]byte(log.Reason))
	_ = binary.Write(w, binary.BigEndian, log.CreatedAt.UTC().UnixMicro())
}

// Sign computes the signature over the record's canonical encoding.
func (s *hmacSigner) Sign(log *auditlogDomain.AuditLog) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	canonicalEncode(mac, log)
	return mac.Sum(nil), nil
}

// Verify checks the record's signature against its content.
func (s *hmacSigner) Verify(log *auditlogDomain.AuditLog) error {
	expected, err := s.Sign(log)
	if err != nil {
		return err
	}
	if !hmac.Equal(expected, log.Signature) {
		return apperrors.Wrap(auditlogDomain.ErrSignatureInvalid, log.ID.String())
	}
	return nil
}
