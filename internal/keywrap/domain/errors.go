package domain

import (
	"github.com/allisson/notekeeper/internal/errors"
)

// Key wrapping error definitions.
var (
	// ErrMalformedEnvelope indicates the wire string is too short to hold a tag and a
	// ciphertext, or the ciphertext cannot be parsed.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed wrapped key")

	// ErrInvalidTagLength indicates a tag that is not exactly TagLength characters.
	ErrInvalidTagLength = errors.Wrap(errors.ErrInvalidInput, "invalid tag length")

	// ErrIntegrityCheckFailed indicates the recomputed HMAC does not match the tag.
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrIntegrity, "wrapped key integrity check failed")

	// ErrDecryptionFailed indicates the ciphertext could not be opened with the given key.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD name or header id.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates an AEAD key that is not DerivedKeySize bytes long.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidIterations indicates a PBKDF2 iteration count outside [1, MaxKDFIterations].
	ErrInvalidIterations = errors.Wrap(errors.ErrInvalidInput, "invalid KDF iteration count")

	// ErrEmptyKey indicates an empty encryption or authentication key.
	ErrEmptyKey = errors.Wrap(errors.ErrInvalidInput, "empty key")
)
