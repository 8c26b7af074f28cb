package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   RegisterRequest
		shouldErr bool
		errMsg    string
	}{
		{
			name:    "valid",
			request: RegisterRequest{Username: "alice", Password: "password1"},
		},
		{
			name:      "missing username",
			request:   RegisterRequest{Password: "password1"},
			shouldErr: true,
			errMsg:    "username",
		},
		{
			name:      "username too short",
			request:   RegisterRequest{Username: "al", Password: "password1"},
			shouldErr: true,
			errMsg:    "username",
		},
		{
			name:      "username too long",
			request:   RegisterRequest{Username: strings.Repeat("a", 65), Password: "password1"},
			shouldErr: true,
			errMsg:    "username",
		},
		{
			name:    "username at max length",
			request: RegisterRequest{Username: strings.Repeat("a", 64), Password: "password1"},
		},
		{
			name:      "username with space",
			request:   RegisterRequest{Username: "alice smith", Password: "password1"},
			shouldErr: true,
			errMsg:    "must not contain whitespace",
		},
		{
			name:      "password too short",
			request:   RegisterRequest{Username: "alice", Password: "short"},
			shouldErr: true,
			errMsg:    "at least 8 characters",
		},
		{
			name:      "missing password",
			request:   RegisterRequest{Username: "alice"},
			shouldErr: true,
			errMsg:    "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthenticateRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AuthenticateRequest{Username: "al", Password: "x"}).Validate())
	assert.Error(t, (&AuthenticateRequest{Username: "   ", Password: "x"}).Validate())
	assert.Error(t, (&AuthenticateRequest{Username: "alice"}).Validate())
}

func TestMapAuthenticateOutputToResponse(t *testing.T) {
	expiresAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	output := &accountDomain.AuthenticateOutput{
		Account:    &accountDomain.Account{Username: "alice", SecretKey: "wrapped"},
		PlainToken: "never in the body",
		ExpiresAt:  expiresAt,
	}

	resp := MapAuthenticateOutputToResponse(output)

	assert.Equal(t, AuthenticateResponse{
		ExpiresOn: expiresAt.Unix(),
		UserID:    "alice",
		SecretKey: "wrapped",
	}, resp)
}
