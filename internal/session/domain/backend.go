package domain

// AuthenticateResult is the Auth Backend answer to a successful authenticate call.
// ExpiresOn is epoch seconds; zero means the field was absent.
type AuthenticateResult struct {
	ExpiresOn int64
	UserID    string
	SecretKey string
}
