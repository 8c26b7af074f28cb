// Package domain defines the wrapped-key wire format shared by the client and the server.
//
// A wrapped key travels as a single string: a fixed-width lowercase hex HMAC-SHA256 tag
// followed by the serialized ciphertext the tag authenticates.
package domain

const (
	// TagLength is the length of the hex-encoded HMAC-SHA256 tag at the head of every
	// wrapped key.
	TagLength = 64

	// SecretKeyLength is the length of an account Secret Key (hex of 32 random bytes).
	SecretKeyLength = 64

	// SaltSize is the size in bytes of the random salt used for PBKDF2 derivations.
	SaltSize = 16

	// DerivedKeySize is the size in bytes of every PBKDF2-derived key.
	DerivedKeySize = 32

	// DefaultKDFIterations is the PBKDF2 iteration count used when none is configured.
	DefaultKDFIterations = 100000

	// MaxKDFIterations caps the iteration count a ciphertext header may carry.
	MaxKDFIterations = 10_000_000

	// CiphertextVersion is the version byte written at the head of every ciphertext.
	CiphertextVersion byte = 1
)

// Algorithm names the AEAD used to seal a ciphertext.
type Algorithm string

const (
	// AESGCM is AES-256-GCM, the default.
	AESGCM Algorithm = "aes-gcm"
	// ChaCha20 is ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ID returns the byte identifying the algorithm inside a ciphertext header, or 0 for an
// unknown algorithm.
func (a Algorithm) ID() byte {
	switch a {
	case AESGCM:
		return 1
	case ChaCha20:
		return 2
	default:
		return 0
	}
}

// AlgorithmFromID maps a ciphertext header byte back to its algorithm.
func AlgorithmFromID(id byte) (Algorithm, error) {
	switch id {
	case 1:
		return AESGCM, nil
	case 2:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

// ParseAlgorithm validates a configured algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(name)
	if alg.ID() == 0 {
		return "", ErrUnsupportedAlgorithm
	}
	return alg, nil
}

// ValidateKDFIterations reports whether n fits in [1, MaxKDFIterations].
func ValidateKDFIterations(n int) error {
	if n < 1 || n > MaxKDFIterations {
		return ErrInvalidIterations
	}
	return nil
}

// AccountAuthKey returns the HMAC key that authenticates an account-level wrap of the
// Secret Key.
func AccountAuthKey(username, password string) string {
	return username + password
}
