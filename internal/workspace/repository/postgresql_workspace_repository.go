// Package repository implements workspace persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
)

// PostgreSQLWorkspaceRepository implements Workspace persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLWorkspaceRepository struct {
	db *sql.DB
}

// Create inserts a new workspace.
func (p *PostgreSQLWorkspaceRepository) Create(ctx context.Context, workspace *workspaceDomain.Workspace) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO workspaces (id, name, is_active, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		workspace.ID,
		workspace.Name,
		workspace.IsActive,
		workspace.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create workspace")
	}
	return nil
}

// Get retrieves a workspace by ID. Returns ErrWorkspaceNotFound if not found.
func (p *PostgreSQLWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, is_active, created_at FROM workspaces WHERE id = $1`

	var workspace workspaceDomain.Workspace
	err := querier.QueryRowContext(ctx, query, workspaceID).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.IsActive,
		&workspace.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspaceDomain.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get workspace")
	}

	return &workspace, nil
}

// List retrieves workspaces ordered by id with pagination support.
func (p *PostgreSQLWorkspaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, is_active, created_at FROM workspaces ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list workspaces")
	}
	defer rows.Close()

	var workspaces []*workspaceDomain.Workspace
	for rows.Next() {
		var workspace workspaceDomain.Workspace
		if err := rows.Scan(
			&workspace.ID,
			&workspace.Name,
			&workspace.IsActive,
			&workspace.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan workspace")
		}
		workspaces = append(workspaces, &workspace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate workspaces")
	}

	return workspaces, nil
}

// Delete removes a workspace. Returns ErrWorkspaceNotFound if it does not exist.
// Callers must cascade fact removal in the same transaction.
func (p *PostgreSQLWorkspaceRepository) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM workspaces WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, workspaceID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete workspace")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return workspaceDomain.ErrWorkspaceNotFound
	}

	return nil
}

// NewPostgreSQLWorkspaceRepository creates a new PostgreSQL Workspace repository.
func NewPostgreSQLWorkspaceRepository(db *sql.DB) *PostgreSQLWorkspaceRepository {
	return &PostgreSQLWorkspaceRepository{db: db}
}
