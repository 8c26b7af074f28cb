// Package service provides at-rest sealing of session-wrapped Secret Keys.
package service

import "context"

// Keeper is the subset of *secrets.Keeper used for sealing.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// Sealer protects stored key material. Open reverses Seal.
type Sealer interface {
	Seal(ctx context.Context, value string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
	Close() error
}
