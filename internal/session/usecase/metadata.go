package usecase

import (
	"log/slog"

	"github.com/allisson/notekeeper/internal/errors"
	sessionDomain "github.com/allisson/notekeeper/internal/session/domain"
)

// loadMetadata reads the persisted session. complete is false when any key is absent,
// empty or unparseable.
func loadMetadata(store SessionStore) (meta sessionDomain.SessionMetadata, complete bool, err error) {
	values := make(map[string]string, len(sessionDomain.MetadataKeys))
	for _, key := range sessionDomain.MetadataKeys {
		value, ok, err := store.Get(key)
		if err != nil {
			return sessionDomain.SessionMetadata{}, false, errors.Wrap(err, "failed to read "+key)
		}
		if !ok || value == "" {
			return sessionDomain.SessionMetadata{}, false, nil
		}
		values[key] = value
	}

	expiresOn, err := sessionDomain.ParseExpiresOn(values[sessionDomain.KeyExpiresOn])
	if err != nil {
		return sessionDomain.SessionMetadata{}, false, nil
	}

	return sessionDomain.SessionMetadata{
		UserID:     values[sessionDomain.KeyUserID],
		ExpiresOn:  expiresOn,
		SessionKey: values[sessionDomain.KeyEncryptionKey],
		SessionID:  values[sessionDomain.KeyKeyID],
	}, true, nil
}

// saveMetadata writes every key. If a write fails, keys already written are removed so
// no partial session is left behind.
func saveMetadata(store SessionStore, meta sessionDomain.SessionMetadata, logger *slog.Logger) error {
	values := meta.Values()
	written := make([]string, 0, len(sessionDomain.MetadataKeys))

	for _, key := range sessionDomain.MetadataKeys {
		if err := store.Set(key, values[key]); err != nil {
			for _, k := range written {
				if rmErr := store.Remove(k); rmErr != nil {
					logger.Error("failed to roll back session metadata", slog.String("key", k), slog.Any("error", rmErr))
				}
			}
			return errors.Wrap(err, "failed to write "+key)
		}
		written = append(written, key)
	}
	return nil
}

// clearMetadata removes every key, logging failures.
func clearMetadata(store SessionStore, logger *slog.Logger) {
	for _, key := range sessionDomain.MetadataKeys {
		if err := store.Remove(key); err != nil {
			logger.Error("failed to remove session metadata", slog.String("key", key), slog.Any("error", err))
		}
	}
}
