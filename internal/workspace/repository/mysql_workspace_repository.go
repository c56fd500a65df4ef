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

// MySQLWorkspaceRepository implements Workspace persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLWorkspaceRepository struct {
	db *sql.DB
}

func scanMySQLWorkspace(scan func(dest ...any) error) (*workspaceDomain.Workspace, error) {
	var workspace workspaceDomain.Workspace
	var idBytes []byte

	if err := scan(&idBytes, &workspace.Name, &workspace.IsActive, &workspace.CreatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse workspace id")
	}
	workspace.ID = id

	return &workspace, nil
}

// Create inserts a new workspace.
func (m *MySQLWorkspaceRepository) Create(ctx context.Context, workspace *workspaceDomain.Workspace) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := workspace.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `INSERT INTO workspaces (id, name, is_active, created_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
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
func (m *MySQLWorkspaceRepository) Get(
	ctx context.Context,
	workspaceID uuid.UUID,
) (*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `SELECT id, name, is_active, created_at FROM workspaces WHERE id = ?`

	row := querier.QueryRowContext(ctx, query, idBytes)
	workspace, err := scanMySQLWorkspace(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspaceDomain.ErrWorkspaceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get workspace")
	}

	return workspace, nil
}

// List retrieves workspaces ordered by id with pagination support.
func (m *MySQLWorkspaceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*workspaceDomain.Workspace, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, is_active, created_at FROM workspaces ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list workspaces")
	}
	defer rows.Close()

	var workspaces []*workspaceDomain.Workspace
	for rows.Next() {
		workspace, err := scanMySQLWorkspace(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan workspace")
		}
		workspaces = append(workspaces, workspace)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate workspaces")
	}

	return workspaces, nil
}

// Delete removes a workspace. Returns ErrWorkspaceNotFound if it does not exist.
// Callers must cascade fact removal in the same transaction.
func (m *MySQLWorkspaceRepository) Delete(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `DELETE FROM workspaces WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, idBytes)
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

// NewMySQLWorkspaceRepository creates a new MySQL Workspace repository.
func NewMySQLWorkspaceRepository(db *sql.DB) *MySQLWorkspaceRepository {
	return &MySQLWorkspaceRepository{db: db}
}
