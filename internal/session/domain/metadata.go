package domain

import (
	"strconv"
	"time"
)

// SessionMetadata is what survives a restart: enough to ask the server for the
// session-wrapped Secret Key and to unwrap it locally. It is not secret on its own.
type SessionMetadata struct {
	UserID     string
	ExpiresOn  time.Time
	SessionKey string
	SessionID  string
}

// Expired reports whether the session has expired at now. The boundary is exclusive: a
// session whose expiry equals now is expired.
func (m SessionMetadata) Expired(now time.Time) bool {
	return !m.ExpiresOn.After(now)
}

// Values returns the store representation keyed by the Session Store keys.
func (m SessionMetadata) Values() map[string]string {
	return map[string]string{
		KeyUserID:        m.UserID,
		KeyExpiresOn:     FormatExpiresOn(m.ExpiresOn),
		KeyEncryptionKey: m.SessionKey,
		KeyKeyID:         m.SessionID,
	}
}

// FormatExpiresOn renders an expiry as decimal epoch seconds.
func FormatExpiresOn(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ParseExpiresOn parses decimal epoch seconds.
func ParseExpiresOn(v string) (time.Time, error) {
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}
