package domain

import "fmt"

// Credential is a username and password pair. It is never persisted.
type Credential struct {
	Username string
	Password string
}

// String keeps the password out of formatted output and logs.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{Username: %q}", c.Username)
}

// GoString keeps the password out of %#v output.
func (c Credential) GoString() string {
	return c.String()
}
