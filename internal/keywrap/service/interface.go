// Package service implements the cryptographic primitives behind wrapped keys: PBKDF2 key
// derivation, AEAD passphrase encryption and HMAC-SHA256 tagging.
package service

import (
	"time"

	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg keywrapDomain.Algorithm) (AEAD, error)
}

// PassphraseCipher encrypts strings under a passphrase and produces a self-describing,
// base64 ciphertext string.
type PassphraseCipher interface {
	Encrypt(plaintext, passphrase string) (string, error)
	Decrypt(ciphertext, passphrase string) (string, error)
}

// Signer computes and verifies hex HMAC-SHA256 tags over strings.
type Signer interface {
	Sign(message, key string) string
	Verify(message, key, tag string) bool
}

// KeyDeriver derives per-session wrapping keys.
type KeyDeriver interface {
	// DeriveSessionKey returns hex(PBKDF2(username+password+unixMillis(now), salt)) for a
	// fresh random salt.
	DeriveSessionKey(username, password string, now time.Time) (string, error)
}

// KeyWrapper wraps and unwraps key material in the tag || ciphertext wire format.
type KeyWrapper interface {
	// Wrap encrypts plaintext under encKey and tags the ciphertext with authKey.
	Wrap(plaintext, encKey, authKey string) (string, error)

	// Unwrap verifies the tag with authKey and only then decrypts with encKey.
	Unwrap(wire, encKey, authKey string) (string, error)
}
