// Package service provides the credential primitives of the account module: password
// hashing, auth token generation and Secret Key generation.
package service

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// Hash returns a PHC-formatted Argon2id hash of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. Malformed hashes never match.
	Compare(password, hash string) bool

	// CompareDummy spends the same work as Compare against an internal hash, so a lookup
	// miss on the username costs as much as a wrong password.
	CompareDummy(password string)
}

// TokenService generates auth cookie values and derives their stored hashes.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)

	HashToken(plainToken string) string
}

// SecretKeyGenerator creates new account Secret Keys.
type SecretKeyGenerator interface {
	// Generate returns a 64 character lowercase hex Secret Key.
	Generate() (string, error)
}
