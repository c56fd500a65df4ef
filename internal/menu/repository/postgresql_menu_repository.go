// Package repository implements menu persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

// isUniqueViolation checks if the error is a unique constraint violation.
// Works for both PostgreSQL and MySQL drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}

// PostgreSQLMenuRepository implements Menu persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLMenuRepository struct {
	db *sql.DB
}

// Create inserts a new menu entry. Returns ErrMenuAlreadyExists when the
// workspace already has an entry with the same path.
func (p *PostgreSQLMenuRepository) Create(ctx context.Context, menu *menuDomain.Menu) error {
	querier := database.GetTx(ctx, p.db)

	query := `
		INSERT INTO menus (id, workspace_id, name, path, parent_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := querier.ExecContext(
		ctx,
		query,
		menu.ID,
		menu.WorkspaceID,
		menu.Name,
		menu.Path,
		menu.ParentID,
		menu.Position,
		menu.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return menuDomain.ErrMenuAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create menu")
	}
	return nil
}

// Get retrieves a menu entry by ID. Returns ErrMenuNotFound if not found.
func (p *PostgreSQLMenuRepository) Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error) {
	querier := database.GetTx(ctx, p.db)

	query := `
		SELECT id, workspace_id, name, path, parent_id, position, created_at
		FROM menus
		WHERE id = $1
	`

	var menu menuDomain.Menu
	err := querier.QueryRowContext(ctx, query, menuID).Scan(
		&menu.ID,
		&menu.WorkspaceID,
		&menu.Name,
		&menu.Path,
		&menu.ParentID,
		&menu.Position,
		&menu.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menuDomain.ErrMenuNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get menu")
	}

	return &menu, nil
}

// ListByWorkspace retrieves the workspace's menu entries in display order
// (position, then insertion order).
func (p *PostgreSQLMenuRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*menuDomain.Menu, error) {
	querier := database.GetTx(ctx, p.db)

	query := `
		SELECT id, workspace_id, name, path, parent_id, position, created_at
		FROM menus
		WHERE workspace_id = $1
		ORDER BY position, id
	`

	rows, err := querier.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list menus")
	}
	defer rows.Close()

	var menus []*menuDomain.Menu
	for rows.Next() {
		var menu menuDomain.Menu
		if err := rows.Scan(
			&menu.ID,
			&menu.WorkspaceID,
			&menu.Name,
			&menu.Path,
			&menu.ParentID,
			&menu.Position,
			&menu.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan menu")
		}
		menus = append(menus, &menu)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate menus")
	}

	return menus, nil
}

// Delete removes a menu entry. Returns ErrMenuNotFound if it does not exist.
func (p *PostgreSQLMenuRepository) Delete(ctx context.Context, menuID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM menus WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, menuID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete menu")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return menuDomain.ErrMenuNotFound
	}

	return nil
}

// DeleteByWorkspace removes every menu entry in the workspace.
func (p *PostgreSQLMenuRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM menus WHERE workspace_id = $1`

	if _, err := querier.ExecContext(ctx, query, workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace menus")
	}
	return nil
}

// NewPostgreSQLMenuRepository creates a new PostgreSQL Menu repository.
func NewPostgreSQLMenuRepository(db *sql.DB) *PostgreSQLMenuRepository {
	return &PostgreSQLMenuRepository{db: db}
}
