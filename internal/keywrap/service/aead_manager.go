package service

import (
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

// cipherFactories holds one constructor per Algorithm a ciphertext header can name.
var cipherFactories = map[keywrapDomain.Algorithm]func(key []byte) (AEAD, error){
	keywrapDomain.AESGCM: func(key []byte) (AEAD, error) {
		return NewAESGCM(key)
	},
	keywrapDomain.ChaCha20: func(key []byte) (AEAD, error) {
		return NewChaCha20Poly1305(key)
	},
}

// AEADManagerService resolves the AEAD named in a passphrase ciphertext header.
type AEADManagerService struct{}

func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher keys the AEAD for alg with a PBKDF2 output. Keys that are not
// DerivedKeySize bytes are refused before the algorithm is looked up.
func (am *AEADManagerService) CreateCipher(key []byte, alg keywrapDomain.Algorithm) (AEAD, error) {
	if len(key) != keywrapDomain.DerivedKeySize {
		return nil, keywrapDomain.ErrInvalidKeySize
	}

	factory, ok := cipherFactories[alg]
	if !ok {
		return nil, keywrapDomain.ErrUnsupportedAlgorithm
	}
	return factory(key)
}
