package service

import (
	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

// KeyWrapperService composes a PassphraseCipher and a Signer into the wrapped-key format.
type KeyWrapperService struct {
	cipher PassphraseCipher
	signer Signer
}

// NewKeyWrapper creates a new KeyWrapperService.
func NewKeyWrapper(cipher PassphraseCipher, signer Signer) *KeyWrapperService {
	return &KeyWrapperService{cipher: cipher, signer: signer}
}

// Wrap returns Sign(ciphertext, authKey) || ciphertext.
func (w *KeyWrapperService) Wrap(plaintext, encKey, authKey string) (string, error) {
	if encKey == "" || authKey == "" {
		return "", keywrapDomain.ErrEmptyKey
	}

	ciphertext, err := w.cipher.Encrypt(plaintext, encKey)
	if err != nil {
		return "", err
	}

	return keywrapDomain.Encode(w.signer.Sign(ciphertext, authKey), ciphertext)
}

// Unwrap checks the tag before touching the ciphertext. A tag mismatch returns
// ErrIntegrityCheckFailed and no decryption is attempted.
func (w *KeyWrapperService) Unwrap(wire, encKey, authKey string) (string, error) {
	if encKey == "" || authKey == "" {
		return "", keywrapDomain.ErrEmptyKey
	}

	wrapped, err := keywrapDomain.Decode(wire)
	if err != nil {
		return "", err
	}

	if !w.signer.Verify(wrapped.Ciphertext, authKey, wrapped.Tag) {
		return "", keywrapDomain.ErrIntegrityCheckFailed
	}

	return w.cipher.Decrypt(wrapped.Ciphertext, encKey)
}
