package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLMembershipRepository implements Membership persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLMembershipRepository struct {
	db *sql.DB
}

// Create inserts a new membership edge. INSERT IGNORE makes re-adding an
// existing edge a no-op.
func (m *MySQLMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO memberships (user_id, role, workspace_id, created_at) VALUES (?, ?, ?, ?)`

	userID, err := membership.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	workspaceID, err := membership.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	_, err = querier.ExecContext(ctx, query, userID, membership.Role, workspaceID, membership.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// Delete removes a membership edge.
// Returns ErrMembershipNotFound if the edge does not exist.
func (m *MySQLMembershipRepository) Delete(
	ctx context.Context,
	workspaceID uuid.UUID,
	userID uuid.UUID,
	role string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM memberships WHERE workspace_id = ? AND user_id = ? AND role = ?`

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, workspaceIDBytes, userIDBytes, role)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete membership")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return authzDomain.ErrMembershipNotFound
	}

	return nil
}

// ListRolesByUser retrieves the roles a user holds in the workspace.
func (m *MySQLMembershipRepository) ListRolesByUser(
	ctx context.Context,
	workspaceID uuid.UUID,
	userID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT role FROM memberships WHERE workspace_id = ? AND user_id = ? ORDER BY created_at, role`

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	userIDBytes, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	rows, err := querier.QueryContext(ctx, query, workspaceIDBytes, userIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// DeleteByWorkspace removes every membership edge in the workspace.
func (m *MySQLMembershipRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `DELETE FROM memberships WHERE workspace_id = ?`

	if _, err := querier.ExecContext(ctx, query, workspaceIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace memberships")
	}
	return nil
}

// NewMySQLMembershipRepository creates a new MySQL Membership repository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}
