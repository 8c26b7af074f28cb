package dto

import (
	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
)

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	UserID string `json:"userId"`
}

// AuthenticateResponse is returned by POST /authenticate. ExpiresOn is the auth token
// expiry in Unix seconds and SecretKey the account-level wrapped Secret Key.
type AuthenticateResponse struct {
	ExpiresOn int64  `json:"expiresOn"`
	UserID    string `json:"userId"`
	SecretKey string `json:"secretKey"`
}

// MapAuthenticateOutputToResponse converts a successful authentication to its response.
func MapAuthenticateOutputToResponse(output *accountDomain.AuthenticateOutput) AuthenticateResponse {
	return AuthenticateResponse{
		ExpiresOn: output.ExpiresAt.Unix(),
		UserID:    output.Account.Username,
		SecretKey: output.Account.SecretKey,
	}
}
