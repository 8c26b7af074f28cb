package service

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	apperrors "github.com/allisson/notekeeper/internal/errors"
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

type secretKeyGenerator struct {
	rand io.Reader
}

func (g *secretKeyGenerator) Generate() (string, error) {
	key := make([]byte, keywrapDomain.SecretKeyLength/2)
	defer keywrapDomain.Zero(key)

	if _, err := io.ReadFull(g.rand, key); err != nil {
		return "", apperrors.Wrap(err, "failed to generate secret key")
	}
	return hex.EncodeToString(key), nil
}

// NewSecretKeyGenerator creates a SecretKeyGenerator reading from crypto/rand.
func NewSecretKeyGenerator() SecretKeyGenerator {
	return &secretKeyGenerator{rand: rand.Reader}
}
