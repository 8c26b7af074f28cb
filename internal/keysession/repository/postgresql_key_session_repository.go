// Package repository implements key session persistence for PostgreSQL. The mysql
// subpackage holds the MySQL variant.
package repository

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

// PostgreSQLKeySessionRepository implements KeySession persistence for PostgreSQL.
type PostgreSQLKeySessionRepository struct {
	db *sql.DB
}

// Create inserts a key session. A duplicate id yields ErrKeySessionExists.
func (p *PostgreSQLKeySessionRepository) Create(ctx context.Context, session *keysessionDomain.KeySession) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_sessions (` + keySessionColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.AccountID,
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
func (p *PostgreSQLKeySessionRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*keysessionDomain.KeySession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + keySessionColumns + ` FROM key_sessions WHERE id = $1`

	var session keysessionDomain.KeySession
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.AccountID,
		&session.Username,
		&session.SecretKey,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, keysessionDomain.ErrKeySessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key session")
	}

	return &session, nil
}

// Revoke sets revoked_at on a session that is not revoked yet.
func (p *PostgreSQLKeySessionRepository) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE key_sessions SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, revokedAt, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke key session")
	}
	return nil
}

// ListByAccount returns an account's sessions ordered by created_at descending.
func (p *PostgreSQLKeySessionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	offset, limit int,
) ([]*keysessionDomain.KeySession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + keySessionColumns + ` FROM key_sessions
			  WHERE account_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list key sessions")
	}
	defer func() {
		_ = rows.Close()
	}()

	sessions := make([]*keysessionDomain.KeySession, 0)
	for rows.Next() {
		var session keysessionDomain.KeySession
		if err := rows.Scan(
			&session.ID,
			&session.AccountID,
			&session.Username,
			&session.SecretKey,
			&session.ExpiresAt,
			&session.RevokedAt,
			&session.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan key session")
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate key sessions")
	}
	return sessions, nil
}

// DeleteExpired deletes sessions that expired or were revoked before olderThan.
func (p *PostgreSQLKeySessionRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM key_sessions WHERE expires_at < $1 OR revoked_at < $1`

	result, err := querier.ExecContext(ctx, query, olderThan)
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
func (p *PostgreSQLKeySessionRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM key_sessions WHERE expires_at < $1 OR revoked_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, olderThan).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired key sessions")
	}
	return count, nil
}

// NewPostgreSQLKeySessionRepository creates a new PostgreSQL KeySession repository.
func NewPostgreSQLKeySessionRepository(db *sql.DB) *PostgreSQLKeySessionRepository {
	return &PostgreSQLKeySessionRepository{db: db}
}
