package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLRuleRepository implements Rule persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRuleRepository struct {
	db *sql.DB
}

// Create inserts a new rule into the MySQL database. INSERT IGNORE against the
// unique fact index makes re-adding an identical grant a no-op.
func (m *MySQLRuleRepository) Create(ctx context.Context, rule *authzDomain.Rule) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO rules (id, workspace_id, subject, resource_kind, resource_path, action, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	ruleID, err := rule.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal rule id")
	}

	workspaceID, err := rule.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		ruleID,
		workspaceID,
		rule.Subject.String(),
		string(rule.Resource.Kind),
		rule.Resource.Path,
		string(rule.Action),
		rule.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create rule")
	}
	return nil
}

// Delete removes a rule matching the exact fact tuple.
// Returns ErrRuleNotFound if no such grant exists.
func (m *MySQLRuleRepository) Delete(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM rules
			  WHERE workspace_id = ? AND subject = ? AND resource_kind = ? AND resource_path = ? AND action = ?`

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		workspaceIDBytes,
		subject.String(),
		string(resource.Kind),
		resource.Path,
		string(action),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete rule")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}

	if rowsAffected == 0 {
		return authzDomain.ErrRuleNotFound
	}

	return nil
}

// ListBySubjects retrieves all rules in the workspace whose subject is in the
// supplied set, ordered by id (UUIDv7 insertion order).
func (m *MySQLRuleRepository) ListBySubjects(
	ctx context.Context,
	workspaceID uuid.UUID,
	subjects []authzDomain.Subject,
) ([]*authzDomain.Rule, error) {
	if len(subjects) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal workspace id")
	}

	placeholders := make([]string, len(subjects))
	args := make([]any, 0, len(subjects)+1)
	args = append(args, workspaceIDBytes)
	for i, subject := range subjects {
		placeholders[i] = "?"
		args = append(args, subject.String())
	}

	query := `SELECT id, workspace_id, subject, resource_kind, resource_path, action, created_at
			  FROM rules
			  WHERE workspace_id = ? AND subject IN (` + strings.Join(placeholders, ", ") + `)
			  ORDER BY id`

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rules")
	}
	defer rows.Close()

	var rules []*authzDomain.Rule
	for rows.Next() {
		rule, err := scanMySQLRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate rules")
	}

	return rules, nil
}

// DeleteByWorkspace removes every rule in the workspace.
func (m *MySQLRuleRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	workspaceIDBytes, err := workspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `DELETE FROM rules WHERE workspace_id = ?`

	if _, err := querier.ExecContext(ctx, query, workspaceIDBytes); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace rules")
	}
	return nil
}

// scanMySQLRule reconstructs a domain rule from a row with BINARY(16) UUID columns.
func scanMySQLRule(rows *sql.Rows) (*authzDomain.Rule, error) {
	var rule authzDomain.Rule
	var idBytes, workspaceIDBytes []byte
	var subject, resourceKind, resourcePath, action string

	if err := rows.Scan(
		&idBytes,
		&workspaceIDBytes,
		&subject,
		&resourceKind,
		&resourcePath,
		&action,
		&rule.CreatedAt,
	); err != nil {
		return nil, apperrors.Wrap(err, "failed to scan rule")
	}

	if err := rule.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal rule id")
	}
	if err := rule.WorkspaceID.UnmarshalBinary(workspaceIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal workspace id")
	}

	parsedSubject, err := authzDomain.ParseSubject(subject)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse stored subject")
	}

	rule.Subject = parsedSubject
	rule.Resource = authzDomain.Resource{
		Kind:        authzDomain.ResourceKind(resourceKind),
		WorkspaceID: rule.WorkspaceID,
		Path:        resourcePath,
	}
	rule.Action = authzDomain.Action(action)

	return &rule, nil
}

// NewMySQLRuleRepository creates a new MySQL Rule repository.
func NewMySQLRuleRepository(db *sql.DB) *MySQLRuleRepository {
	return &MySQLRuleRepository{db: db}
}
