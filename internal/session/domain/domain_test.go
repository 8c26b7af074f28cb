package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/notekeeper/internal/errors"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "secret tampered", err: ErrSecretTampered, want: "WARNING: Secret tampered!"},
		{name: "key tampered", err: apperrors.Wrap(ErrKeyTampered, "resume"), want: "WARNING: Key tampered!"},
		{
			name: "missing credentials",
			err:  ErrMissingCredentials,
			want: "Unknown error. Missing required credentials",
		},
		{
			name: "network",
			err:  apperrors.Wrap(ErrNetwork, "dial tcp"),
			want: "Failed to connect to Server. Check network connectivity",
		},
		{
			name: "server message verbatim",
			err:  &AuthRejectedError{StatusCode: 401, Message: "Invalid username or password"},
			want: "Invalid username or password",
		},
		{
			name: "server rejection without message",
			err:  &AuthRejectedError{StatusCode: 502},
			want: "Failed to connect to Server. Check network connectivity",
		},
		{name: "invalid secret key", err: ErrInvalidSecretKey, want: "Unknown error."},
		{name: "anything else", err: fmt.Errorf("boom"), want: "Unknown error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestAuthRejectedError(t *testing.T) {
	err := apperrors.Wrap(&AuthRejectedError{StatusCode: 409, Message: "conflict"}, "create session")

	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "status 409: conflict")

	var rejected *AuthRejectedError
	require.True(t, apperrors.As(err, &rejected))
	assert.Equal(t, 409, rejected.StatusCode)

	assert.Equal(t, "auth backend rejected request with status 500", (&AuthRejectedError{StatusCode: 500}).Error())
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, apperrors.Is(ErrNetwork, apperrors.ErrUnavailable))
	assert.True(t, apperrors.Is(ErrSecretTampered, apperrors.ErrIntegrity))
	assert.True(t, apperrors.Is(ErrKeyTampered, apperrors.ErrIntegrity))
	assert.True(t, apperrors.Is(ErrMissingCredentials, apperrors.ErrInvalidInput))
	assert.True(t, apperrors.Is(ErrInvalidSecretKey, apperrors.ErrInvalidInput))
}

func TestSessionMetadata_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)

	assert.True(t, SessionMetadata{ExpiresOn: now}.Expired(now), "equal to now is expired")
	assert.True(t, SessionMetadata{ExpiresOn: now.Add(-time.Second)}.Expired(now))
	assert.False(t, SessionMetadata{ExpiresOn: now.Add(time.Second)}.Expired(now))
}

func TestSessionMetadata_Values(t *testing.T) {
	m := SessionMetadata{
		UserID:     "user123",
		ExpiresOn:  time.Unix(1700000000, 0),
		SessionKey: "key",
		SessionID:  "id",
	}

	assert.Equal(t, map[string]string{
		"userId":        "user123",
		"expiresOn":     "1700000000",
		"encryptionKey": "key",
		"keyId":         "id",
	}, m.Values())
}

func TestParseExpiresOn(t *testing.T) {
	got, err := ParseExpiresOn("1700000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), got.Unix())

	_, err = ParseExpiresOn("tomorrow")
	assert.Error(t, err)
}

func TestCredential_String(t *testing.T) {
	c := Credential{Username: "user123", Password: "password"}

	assert.NotContains(t, c.String(), "password")
	assert.NotContains(t, fmt.Sprintf("%v %+v %#v", c, c, c), "password")
}

func TestAuthState_String(t *testing.T) {
	s := AuthState{Status: StatusAuthenticated, UserID: "user123", SecretKey: "supersecret"}

	assert.True(t, s.IsAuthenticated())
	assert.NotContains(t, s.String(), "supersecret")
	assert.False(t, AuthState{Status: StatusFailed}.IsAuthenticated())
}
