// Package domain defines the client-side session model: credentials, the observable
// authentication state and the metadata persisted between runs.
package domain

// Session Store keys.
const (
	KeyUserID        = "userId"
	KeyExpiresOn     = "expiresOn"
	KeyEncryptionKey = "encryptionKey"
	KeyKeyID         = "keyId"
)

// MetadataKeys lists every key written by a successful login, in write order.
var MetadataKeys = []string{KeyUserID, KeyExpiresOn, KeyEncryptionKey, KeyKeyID}

// Status is the authentication status of the client.
type Status string

const (
	// StatusIdle is the logged-out state.
	StatusIdle           Status = "idle"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusFailed         Status = "failed"
)

// User-facing messages.
const (
	MessageSecretTampered     = "WARNING: Secret tampered!"
	MessageKeyTampered        = "WARNING: Key tampered!"
	MessageMissingCredentials = "Unknown error. Missing required credentials"
	MessageNetwork            = "Failed to connect to Server. Check network connectivity"
	MessageUnknown            = "Unknown error."
)
