package domain

const (
	// AuthCookieName is the cookie carrying the plain auth token.
	AuthCookieName = "notekeeper_auth"

	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 8
)
