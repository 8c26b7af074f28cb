// Package mysql implements key session persistence for MySQL. UUIDs are stored as
// BINARY(16).
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
	keysessionDomain "github.com/allisson/notekeeper/internal/keysession/domain"
)

const keySessionColumns = `id, account_id, username, secret_key, expires_at, revoked_at, created_at`

// MySQLKeySessionRepository implements KeySession persistence for MySQL.
type MySQLKeySessionRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKeySession(row rowScanner) (*keysessionDomain.KeySession, error) {
	var session keysessionDomain.KeySession
	var idBytes, accountIDBytes []byte

	if err := row.Scan(
		&idBytes,
		&accountIDBytes,
		&session.Username,
		&session.SecretKey,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := session.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal key session id")
	}
	if err := session.AccountID.UnmarshalBinary(accountIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}
	return &session, nil
}

// Create inserts a key session. A duplicate id yields ErrKeySessionExists.
func (m *MySQLKeySessionRepository) Create(ctx context.Context, session *keysessionDomain.KeySession) error {
	querier := database.GetTx(ctx, m.db)

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key session id")
	}
	accountID, err := session.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `INSERT INTO key_sessions (` + keySessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		accountID,
		session.Username,
		session.SecretKey,
		session.ExpiresAt,
		session.RevokedAt,
		session.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return keysessionDomain.ErrKeySessionExists
		}
		return apperrors.Wrap(err, "failed to create key session")
	}
	return nil
}

// GetByID retrieves a key session by id.
func (m *MySQLKeySessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*keysessionDomain.KeySession, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal key session id")
	}

	query := `SELECT ` + keySessionColumns + ` FROM key_sessions WHERE id = ?`

	session, err := scanKeySession(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keysessionDomain.ErrKeySessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key session")
	}
	return session, nil
}

// Revoke sets revoked_at on a session that is not revoked yet.
func (m *MySQLKeySessionRepository) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal key session id")
	}

	query := `UPDATE key_sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, revokedAt, idBytes); err != nil {
		return apperrors.Wrap(err, "failed to revoke key session")
	}
	return nil
}

// ListByAccount returns an account's sessions ordered by created_at descending.
func (m *MySQLKeySessionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*keysessionDomain.KeySession, error) {
	querier := database.GetTx(ctx, m.db)

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT ` + keySessionColumns + ` FROM key_sessions
			  WHERE account_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, accountIDBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list key sessions")
	}
	defer func() {
		_ = rows.Close()
	}()

	sessions := make([]*keysessionDomain.KeySession, 0)
	for rows.Next() {
		session, err := scanKeySession(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key session")
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key sessions")
	}
	return sessions, nil
}

// DeleteExpired deletes sessions that expired or were revoked before olderThan.
func (m *MySQLKeySessionRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM key_sessions WHERE expires_at < ? OR revoked_at < ?`,
		olderThan,
		olderThan,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired key sessions")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}

// CountExpired counts what DeleteExpired would remove.
func (m *MySQLKeySessionRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM key_sessions WHERE expires_at < ? OR revoked_at < ?`,
		olderThan,
		olderThan,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired key sessions")
	}
	return count, nil
}

// NewMySQLKeySessionRepository creates a new MySQL KeySession repository.
func NewMySQLKeySessionRepository(db *sql.DB) *MySQLKeySessionRepository {
	return &MySQLKeySessionRepository{db: db}
}
