package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
)

// MySQLAuthTokenRepository implements AuthToken persistence for MySQL.
type MySQLAuthTokenRepository struct {
	db *sql.DB
}

// Create inserts a new auth token.
func (m *MySQLAuthTokenRepository) Create(ctx context.Context, token *accountDomain.AuthToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO auth_tokens (id, token_hash, account_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal auth token id")
	}

	accountID, err := token.AccountID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		accountID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create auth token")
	}
	return nil
}

// GetByTokenHash retrieves an auth token by the hash of its cookie value.
func (m *MySQLAuthTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*accountDomain.AuthToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, account_id, expires_at, revoked_at, created_at
			  FROM auth_tokens WHERE token_hash = ?`

	var token accountDomain.AuthToken
	var idBytes []byte
	var accountIDBytes []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes,
		&token.TokenHash,
		&accountIDBytes,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get auth token")
	}

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal auth token id")
	}
	if err := token.AccountID.UnmarshalBinary(accountIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}

	return &token, nil
}

// DeleteExpired deletes tokens that expired before olderThan.
func (m *MySQLAuthTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired auth tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}

// CountExpired counts tokens that expired before olderThan without deleting them.
func (m *MySQLAuthTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM auth_tokens WHERE expires_at < ?`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired auth tokens")
	}
	return count, nil
}

// NewMySQLAuthTokenRepository creates a new MySQL AuthToken repository.
func NewMySQLAuthTokenRepository(db *sql.DB) *MySQLAuthTokenRepository {
	return &MySQLAuthTokenRepository{db: db}
}
