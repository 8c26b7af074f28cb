package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

// PBKDF2KeyDeriver derives session keys with PBKDF2-SHA256.
type PBKDF2KeyDeriver struct {
	iterations int
	rand       io.Reader
}

// NewPBKDF2KeyDeriver creates a PBKDF2KeyDeriver. A non-positive iteration count falls
// back to DefaultKDFIterations; a count above MaxKDFIterations makes DeriveSessionKey fail.
func NewPBKDF2KeyDeriver(iterations int) *PBKDF2KeyDeriver {
	if iterations <= 0 {
		iterations = keywrapDomain.DefaultKDFIterations
	}
	return &PBKDF2KeyDeriver{iterations: iterations, rand: rand.Reader}
}

// DeriveSessionKey returns a 64-character hex session key. The salt is random and never
// stored, so every call yields an unrelated key even for the same inputs and instant.
func (d *PBKDF2KeyDeriver) DeriveSessionKey(username, password string, now time.Time) (string, error) {
	if err := keywrapDomain.ValidateKDFIterations(d.iterations); err != nil {
		return "", err
	}

	salt := make([]byte, keywrapDomain.SaltSize)
	if _, err := io.ReadFull(d.rand, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	material := username + password + strconv.FormatInt(now.UnixMilli(), 10)
	key := deriveKey(material, salt, d.iterations)
	defer keywrapDomain.Zero(key)

	return hex.EncodeToString(key), nil
}
