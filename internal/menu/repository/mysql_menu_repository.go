package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

// MySQLMenuRepository implements Menu persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLMenuRepository struct {
	db *sql.DB
}

func scanMySQLMenu(scan func(dest ...any) error) (*menuDomain.Menu, error) {
	var menu menuDomain.Menu
	var idBytes, workspaceIDBytes, parentIDBytes []byte

	if err := scan(
		&idBytes,
		&workspaceIDBytes,
		&menu.Name,
		&menu.Path,
		&parentIDBytes,
		&menu.Position,
		&menu.CreatedAt,
	); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse menu id")
	}
	menu.ID = id

	workspaceID, err := uuid.FromBytes(workspaceIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse workspace id")
	}
	menu.WorkspaceID = workspaceID

	if parentIDBytes != nil {
		parentID, err := uuid.FromBytes(parentIDBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse parent id")
		}
		menu.ParentID = &parentID
	}

	return &menu, nil
}

func marshalOptionalUUID(id *uuid.UUID) ([]byte, error) {
	if id == nil {
		return nil, nil
	}
	return id.MarshalBinary()
}

// Create inserts a new menu entry. Returns ErrMenuAlreadyExists when the
// workspace already has an entry with the same path.
func (m *MySQLMenuRepository) Create(ctx context.Context, menu *menuDomain.Menu) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := menu.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal menu id")
	}
	workspaceIDBytes, err := menu.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}
	parentIDBytes, err := marshalOptionalUUID(menu.ParentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal parent id")
	}

	query := `
		INSERT INTO menus (id, workspace_id, name, path, parent_id, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		workspaceIDBytes,
		menu.Name,
		menu.Path,
		parentIDBytes,
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
func (m *MySQLMenuRepository) Get(ctx context.Context, menuID uuid.UUID) (*menuDomain.Menu, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := menuID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal menu id")
	}

	query := `
		SELECT id, workspace_id, name, path, parent_id, position, created_at
		FROM menus
		WHERE id = ?
	`

	row := querier.QueryRowContext(ctx, query, idBytes)
	menu, err := scanMySQLMenu(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menuDomain.ErrMenuNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get menu")
	}

	return menu, nil
}

// ListByWorkspace retrieves the workspace's menu entries in display order
// (position, then insertion order).
func (m *MySQLMenuRepository) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*menuDomain.Menu, error) {
	querier := database.GetTx(ctx, m.db)

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `
		SELECT id, workspace_id, name, path, parent_id, position, created_at
		FROM menus
		WHERE workspace_id = ?
		ORDER BY position, id
	`

	rows, err := querier.QueryContext(ctx, query, workspaceIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list menus")
	}
	defer rows.Close()

	var menus []*menuDomain.Menu
	for rows.Next() {
		menu, err := scanMySQLMenu(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan menu")
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate menus")
	}

	return menus, nil
}

// Delete removes a menu entry. Returns ErrMenuNotFound if it does not exist.
func (m *MySQLMenuRepository) Delete(ctx context.Context, menuID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := menuID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal menu id")
	}

	query := `DELETE FROM menus WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, idBytes)
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
func (m *MySQLMenuRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `DELETE FROM menus WHERE workspace_id = ?`

	if _, err := querier.ExecContext(ctx, query, workspaceIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace menus")
	}
	return nil
}

// NewMySQLMenuRepository creates a new MySQL Menu repository.
func NewMySQLMenuRepository(db *sql.DB) *MySQLMenuRepository {
	return &MySQLMenuRepository{db: db}
}
