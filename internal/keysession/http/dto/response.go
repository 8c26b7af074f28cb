package dto

import (
	"time"

	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
)

// FetchSessionResponse carries the session-wrapped Secret Key.
type FetchSessionResponse struct {
	SecretKey string `json:"secretKey"`
}

// SessionResponse describes a key session without its key material.
type SessionResponse struct {
	KeyID     string     `json:"keyId"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ListSessionsResponse is the body of GET /session/list.
type ListSessionsResponse struct {
	Data []SessionResponse `json:"data"`
}

func MapKeySessionToResponse(session *keysessionDomain.KeySession) SessionResponse {
	return SessionResponse{
		KeyID:     session.ID.String(),
		ExpiresAt: session.ExpiresAt,
		RevokedAt: session.RevokedAt,
		CreatedAt: session.CreatedAt,
	}
}

func MapKeySessionsToListResponse(sessions []*keysessionDomain.KeySession) ListSessionsResponse {
	data := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		data = append(data, MapKeySessionToResponse(session))
	}
	return ListSessionsResponse{Data: data}
}
