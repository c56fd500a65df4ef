package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user.
// Returns ErrUserAlreadyExists if the email is already taken.
func (m *MySQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (id, email, name, api_key_hash, is_superuser, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	userID, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		userID,
		user.Email,
		user.Name,
		user.APIKeyHash,
		user.IsSuperuser,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identityDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Update modifies an existing user.
// Returns ErrUserNotFound if the user does not exist.
func (m *MySQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE users SET email = ?, name = ?, api_key_hash = ?, is_superuser = ?, is_active = ?
			  WHERE id = ?`

	userID, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		user.Email,
		user.Name,
		user.APIKeyHash,
		user.IsSuperuser,
		user.IsActive,
		userID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return identityDomain.ErrUserNotFound
	}

	return nil
}

// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users WHERE id = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, idBytes))
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users WHERE email = ?`

	return scanMySQLUser(querier.QueryRowContext(ctx, query, email))
}

// List retrieves users ordered by id with pagination support.
func (m *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*identityDomain.User
	for rows.Next() {
		var user identityDomain.User
		var idBytes []byte
		if err := rows.Scan(
			&idBytes,
			&user.Email,
			&user.Name,
			&user.APIKeyHash,
			&user.IsSuperuser,
			&user.IsActive,
			&user.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		if err := user.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user id")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// scanMySQLUser reconstructs a user from a single row with a BINARY(16) id column.
func scanMySQLUser(row *sql.Row) (*identityDomain.User, error) {
	var user identityDomain.User
	var idBytes []byte

	err := row.Scan(
		&idBytes,
		&user.Email,
		&user.Name,
		&user.APIKeyHash,
		&user.IsSuperuser,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	return &user, nil
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
