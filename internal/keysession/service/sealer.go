package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// OpenKeeper opens a secrets.Keeper for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

type keeperSealer struct {
	keeper Keeper
}

// NewKeeperSealer seals values with keeper and encodes the result as standard base64.
func NewKeeperSealer(keeper Keeper) Sealer {
	return &keeperSealer{keeper: keeper}
}

func (k *keeperSealer) Seal(ctx context.Context, value string) (string, error) {
	ciphertext, err := k.keeper.Encrypt(ctx, []byte(value))
	if err != nil {
		return "", fmt.Errorf("failed to seal key material: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (k *keeperSealer) Open(ctx context.Context, sealed string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed key material: %w", err)
	}

	plaintext, err := k.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to open key material: %w", err)
	}
	return string(plaintext), nil
}

func (k *keeperSealer) Close() error {
	return k.keeper.Close()
}

type noopSealer struct{}

// NewNoopSealer stores values as received. Used when no KMS key is configured.
func NewNoopSealer() Sealer {
	return noopSealer{}
}

func (noopSealer) Seal(_ context.Context, value string) (string, error) { return value, nil }

func (noopSealer) Open(_ context.Context, sealed string) (string, error) { return sealed, nil }

func (noopSealer) Close() error { return nil }
