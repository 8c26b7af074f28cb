// Package dto provides data transfer objects for the key session endpoints.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
	customValidation "github.com/allisson/notekeeper/internal/validation"
)

// CreateSessionRequest is the body of POST /session/create.
type CreateSessionRequest struct {
	Username         string `json:"username"`
	SessionSecretKey string `json:"sessionSecretKey"`
	KeyID            string `json:"keyId"`
}

func (r *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.SessionSecretKey, validation.Required, customValidation.NoWhitespace),
		validation.Field(&r.KeyID, validation.Required, customValidation.UUID),
	)
}

// ToDomain converts the request to a CreateInput. Call Validate first.
func (r *CreateSessionRequest) ToDomain() *keysessionDomain.CreateInput {
	return &keysessionDomain.CreateInput{
		Username:         r.Username,
		SessionSecretKey: r.SessionSecretKey,
		KeyID:            uuid.MustParse(r.KeyID),
	}
}

// LookupSessionRequest is the body of POST /session/fetch and POST /session/revoke.
type LookupSessionRequest struct {
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

func (r *LookupSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.UUID, validation.Required, customValidation.UUID),
	)
}

// ToDomain converts the request to a LookupInput. Call Validate first.
func (r *LookupSessionRequest) ToDomain() *keysessionDomain.LookupInput {
	return &keysessionDomain.LookupInput{
		Username: r.Username,
		KeyID:    uuid.MustParse(r.UUID),
	}
}
