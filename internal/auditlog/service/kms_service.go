package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsKeyUnwrapper implements KeyUnwrapper using gocloud.dev/secrets.
type kmsKeyUnwrapper struct{}

// NewKMSKeyUnwrapper creates a new KMS-backed key unwrapper.
func NewKMSKeyUnwrapper() KeyUnwrapper {
	return &kmsKeyUnwrapper{}
}

// UnwrapKey decrypts the wrapped signing key with the configured KMS provider.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsKeyUnwrapper) UnwrapKey(ctx context.Context, keyURI string, wrappedKey []byte) ([]byte, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer keeper.Close()

	key, err := keeper.Decrypt(ctx, wrappedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap signing key: %w", err)
	}
	return key, nil
}
