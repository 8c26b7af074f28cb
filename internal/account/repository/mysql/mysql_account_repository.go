// Package mysql implements account and auth token persistence for MySQL. UUIDs are
// stored as BINARY(16).
package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	accountDomain "github.com/allisson/notekeeper/internal/account/domain"
	"github.com/allisson/notekeeper/internal/database"
	apperrors "github.com/allisson/notekeeper/internal/errors"
)

// MySQLAccountRepository implements Account persistence for MySQL.
type MySQLAccountRepository struct {
	db *sql.DB
}

// Create inserts a new account. A duplicate username maps to ErrUsernameTaken.
func (m *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO accounts (id, username, password_hash, secret_key, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal account id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLAccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (*accountDomain.Account, error) {
	id, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal account id")
	}

	query := `SELECT id, username, password_hash, secret_key, created_at
			  FROM accounts WHERE id = ?`
	return m.get(ctx, query, id)
}

// GetByUsername retrieves an account by username.
func (m *MySQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT id, username, password_hash, secret_key, created_at
			  FROM accounts WHERE username = ?`
	return m.get(ctx, query, username)
}

func (m *MySQLAccountRepository) get(ctx context.Context, query string, arg any) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, m.db)

	var account accountDomain.Account
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
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

	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal account id")
	}

	return &account, nil
}

// NewMySQLAccountRepository creates a new MySQL Account repository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}
