package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
)

// PostgreSQLAuthTokenRepository implements AuthToken persistence for PostgreSQL.
type PostgreSQLAuthTokenRepository struct {
	db *sql.DB
}

// Create inserts a new auth token.
func (p *PostgreSQLAuthTokenRepository) Create(ctx context.Context, token *accountDomain.AuthToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO auth_tokens (id, token_hash, account_id, expires_at, revoked_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.AccountID,
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
func (p *PostgreSQLAuthTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*accountDomain.AuthToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, account_id, expires_at, revoked_at, created_at
			  FROM auth_tokens WHERE token_hash = $1`

	var token accountDomain.AuthToken
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.AccountID,
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

	return &token, nil
}

// DeleteExpired deletes tokens that expired before olderThan.
func (p *PostgreSQLAuthTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at < $1`, olderThan)
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
func (p *PostgreSQLAuthTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	if olderThan.IsZero() {
		return 0, apperrors.New("olderThan timestamp cannot be zero")
	}

	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM auth_tokens WHERE expires_at < $1`, olderThan).
		Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired auth tokens")
	}
	return count, nil
}

// NewPostgreSQLAuthTokenRepository creates a new PostgreSQL AuthToken repository.
func NewPostgreSQLAuthTokenRepository(db *sql.DB) *PostgreSQLAuthTokenRepository {
	return &PostgreSQLAuthTokenRepository{db: db}
}
