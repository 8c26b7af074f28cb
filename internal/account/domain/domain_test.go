package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/notekeeper/internal/errors"
)

func TestAuthToken_IsActive(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name     string
		token    AuthToken
		expected bool
	}{
		{
			name:     "not expired",
			token:    AuthToken{ExpiresAt: now.Add(time.Hour)},
			expected: true,
		},
		{
			name:     "expires exactly now",
			token:    AuthToken{ExpiresAt: now},
			expected: false,
		},
		{
			name:     "expired",
			token:    AuthToken{ExpiresAt: now.Add(-time.Second)},
			expected: false,
		},
		{
			name:     "revoked",
			token:    AuthToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.token.IsActive(now))
		})
	}
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrAccountNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrUsernameTaken, apperrors.ErrConflict)
	assert.ErrorIs(t, ErrInvalidCredentials, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrTokenInactive, apperrors.ErrUnauthorized)

	msg, ok := apperrors.PublicMessage(ErrInvalidCredentials)
	assert.True(t, ok)
	assert.Equal(t, "Invalid username or password", msg)
}
