package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/notekeeper/internal/errors"
)

const dummyPassword = "notekeeper-timing-equalizer"

type passwordService struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

func (s *passwordService) Hash(password string) (string, error) {
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

func (s *passwordService) Compare(password, hash string) bool {
	ok, err := s.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}

func (s *passwordService) CompareDummy(password string) {
	_ = s.Compare(password, s.dummyHash)
}

// NewPasswordService creates a PasswordService using the moderate Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	dummyHash, err := hasher.Hash([]byte(dummyPassword))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash dummy password")
	}

	return &passwordService{hasher: hasher, dummyHash: dummyHash}, nil
}
