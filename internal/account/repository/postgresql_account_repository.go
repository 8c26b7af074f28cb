// Package repository implements account and auth token persistence for PostgreSQL and,
// under mysql/, for MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
)

// PostgreSQLAccountRepository implements Account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. A duplicate username maps to ErrUsernameTaken.
func (p *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO accounts (id, username, password_hash, secret_key, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.SecretKey,
		account.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return accountDomain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by id.
func (p *PostgreSQLAccountRepository) GetByID(
	ctx context.Context,
	accountID uuid.UUID,
) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, secret_key, created_at
			  FROM accounts WHERE id = $1`
	return p.get(ctx, query, accountID)
}

// GetByUsername retrieves an account by username.
func (p *PostgreSQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, secret_key, created_at
			  FROM accounts WHERE username = $1`
	return p.get(ctx, query, username)
}

func (p *PostgreSQLAccountRepository) get(
	ctx context.Context,
	query string,
	arg any,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, p.db)

	var account accountDomain.Account
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.SecretKey,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	return &account, nil
}

// NewPostgreSQLAccountRepository creates a new PostgreSQL Account repository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}
