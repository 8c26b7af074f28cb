package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	keywrapDomain "github.com/allisson/notekeeper/internal/keywrap/domain"
)

const (
	// headerSize is version(1) || algorithm(1) || iterations(4).
	headerSize = 6
	nonceSize  = 12
)

// PassphraseCipherService seals strings with a key derived from a passphrase.
//
// Output layout before base64:
//
//	version || algorithm || iterations (uint32 BE) || salt (16) || nonce (12) || sealed
//
// The 6-byte header is bound as additional data, so neither the algorithm nor the
// iteration count can be swapped without failing decryption.
type PassphraseCipherService struct {
	aeadManager AEADManager
	alg         keywrapDomain.Algorithm
	iterations  int
	rand        io.Reader
}

// NewPassphraseCipher creates a PassphraseCipherService that encrypts with alg and
// iterations. Decryption reads both from the ciphertext header. A non-positive count
// falls back to DefaultKDFIterations; a count above MaxKDFIterations makes Encrypt fail.
func NewPassphraseCipher(
	aeadManager AEADManager,
	alg keywrapDomain.Algorithm,
	iterations int,
) *PassphraseCipherService {
	if iterations <= 0 {
		iterations = keywrapDomain.DefaultKDFIterations
	}
	return &PassphraseCipherService{
		aeadManager: aeadManager,
		alg:         alg,
		iterations:  iterations,
		rand:        rand.Reader,
	}
}

// Encrypt encrypts plaintext under passphrase.
func (p *PassphraseCipherService) Encrypt(plaintext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", keywrapDomain.ErrEmptyKey
	}

	algID := p.alg.ID()
	if algID == 0 {
		return "", keywrapDomain.ErrUnsupportedAlgorithm
	}
	if err := keywrapDomain.ValidateKDFIterations(p.iterations); err != nil {
		return "", err
	}

	salt := make([]byte, keywrapDomain.SaltSize)
	if _, err := io.ReadFull(p.rand, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	header := make([]byte, headerSize)
	header[0] = keywrapDomain.CiphertextVersion
	header[1] = algID
	binary.BigEndian.PutUint32(header[2:], uint32(p.iterations))

	key := deriveKey(passphrase, salt, p.iterations)
	defer keywrapDomain.Zero(key)

	aead, err := p.aeadManager.CreateCipher(key, p.alg)
	if err != nil {
		return "", err
	}

	sealed, nonce, err := aead.Encrypt([]byte(plaintext), header)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, headerSize+len(salt)+len(nonce)+len(sealed))
	out = append(out, header...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt decrypts a ciphertext produced by Encrypt. Unparseable input returns
// ErrMalformedEnvelope; a wrong passphrase or a modified ciphertext returns ErrDecryptionFailed.
func (p *PassphraseCipherService) Decrypt(ciphertext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", keywrapDomain.ErrEmptyKey
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", keywrapDomain.ErrMalformedEnvelope
	}
	if len(raw) < headerSize+keywrapDomain.SaltSize+nonceSize {
		return "", keywrapDomain.ErrMalformedEnvelope
	}

	header := raw[:headerSize]
	if header[0] != keywrapDomain.CiphertextVersion {
		return "", keywrapDomain.ErrMalformedEnvelope
	}

	alg, err := keywrapDomain.AlgorithmFromID(header[1])
	if err != nil {
		return "", err
	}

	iterations := binary.BigEndian.Uint32(header[2:])
	if iterations == 0 || iterations > keywrapDomain.MaxKDFIterations {
		return "", keywrapDomain.ErrMalformedEnvelope
	}

	salt := raw[headerSize : headerSize+keywrapDomain.SaltSize]
	nonce := raw[headerSize+keywrapDomain.SaltSize : headerSize+keywrapDomain.SaltSize+nonceSize]
	sealed := raw[headerSize+keywrapDomain.SaltSize+nonceSize:]

	key := deriveKey(passphrase, salt, int(iterations))
	defer keywrapDomain.Zero(key)

	aead, err := p.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Decrypt(sealed, nonce, header)
	if err != nil {
		return "", keywrapDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func deriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keywrapDomain.DerivedKeySize, sha256.New)
}
