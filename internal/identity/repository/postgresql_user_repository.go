// Package repository implements user persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
)

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user.
// Returns ErrUserAlreadyExists if the email is already taken.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, email, name, api_key_hash, is_superuser, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
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
func (p *PostgreSQLUserRepository) Update(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users SET email = $2, name = $3, api_key_hash = $4, is_superuser = $5, is_active = $6
			  WHERE id = $1`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.APIKeyHash,
		user.IsSuperuser,
		user.IsActive,
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
func (p *PostgreSQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users WHERE id = $1`

	var user identityDomain.User
	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
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
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
func (p *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users WHERE email = $1`

	var user identityDomain.User
	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
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
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return &user, nil
}

// List retrieves users ordered by id with pagination support.
func (p *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, email, name, api_key_hash, is_superuser, is_active, created_at
			  FROM users ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*identityDomain.User
	for rows.Next() {
		var user identityDomain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.APIKeyHash,
			&user.IsSuperuser,
			&user.IsActive,
			&user.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	return users, nil
}

// isUniqueViolation checks if the error is a unique constraint violation.
// Works for both PostgreSQL and MySQL error message formats.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	// MySQL: "error 1062 (23000): duplicate entry"
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
