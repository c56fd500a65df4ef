package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// PostgreSQLMembershipRepository implements Membership persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// Create inserts a new membership edge. Re-adding an existing edge is a no-op.
func (p *PostgreSQLMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO memberships (user_id, role, workspace_id, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (workspace_id, user_id, role) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		membership.UserID,
		membership.Role,
		membership.WorkspaceID,
		membership.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create membership")
	}
	return nil
}

// Delete removes a membership edge.
// Returns ErrMembershipNotFound if the edge does not exist.
func (p *PostgreSQLMembershipRepository) Delete(
	ctx context.Context,
	workspaceID uuid.UUID,
	userID uuid.UUID,
	role string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM memberships WHERE workspace_id = $1 AND user_id = $2 AND role = $3`

	result, err := querier.ExecContext(ctx, query, workspaceID, userID, role)
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

// ListRolesByUser retrieves the roles a user holds in the workspace, ordered
// by insertion for deterministic subject sets.
func (p *PostgreSQLMembershipRepository) ListRolesByUser(
	ctx context.Context,
	workspaceID uuid.UUID,
	userID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT role FROM memberships WHERE workspace_id = $1 AND user_id = $2 ORDER BY created_at, role`

	rows, err := querier.QueryContext(ctx, query, workspaceID, userID)
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

// DeleteByWorkspace removes every membership edge in the workspace. Used by
// workspace deletion to cascade fact removal.
func (p *PostgreSQLMembershipRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM memberships WHERE workspace_id = $1`

	if _, err := querier.ExecContext(ctx, query, workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace memberships")
	}
	return nil
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQL Membership repository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}
