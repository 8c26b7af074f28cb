// Package dto provides data transfer objects for the account endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	customValidation "github.com/allisson/notekeeper/internal/validation"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the username shape and the minimum password length.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			validation.RuneLength(accountDomain.MinUsernameLength, accountDomain.MaxUsernameLength),
			customValidation.NoSpaces,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: accountDomain.MinPasswordLength},
		),
	)
}

// ToDomain converts the request to a RegisterInput.
func (r *RegisterRequest) ToDomain() *accountDomain.RegisterInput {
	return &accountDomain.RegisterInput{Username: r.Username, Password: r.Password}
}

// AuthenticateRequest is the body of POST /authenticate.
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate only requires both fields; shape rules would leak which usernames exist.
func (r *AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToDomain converts the request to an AuthenticateInput.
func (r *AuthenticateRequest) ToDomain() *accountDomain.AuthenticateInput {
	return &accountDomain.AuthenticateInput{Username: r.Username, Password: r.Password}
}
