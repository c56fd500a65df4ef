// Package repository implements policy fact persistence for PostgreSQL and MySQL.
// Facts (rules and memberships) are keyed by workspace; every query filters on
// workspace_id so facts from one tenant are never visible to another.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// PostgreSQLRuleRepository implements Rule persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRuleRepository struct {
	db *sql.DB
}

// Create inserts a new rule into the PostgreSQL database. Re-adding an
// identical grant is a no-op: the insert lands on the unique fact index and
// does nothing, so the observable state matches a single add.
func (p *PostgreSQLRuleRepository) Create(ctx context.Context, rule *authzDomain.Rule) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO rules (id, workspace_id, subject, resource_kind, resource_path, action, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (workspace_id, subject, resource_kind, resource_path, action) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		rule.ID,
		rule.WorkspaceID,
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
func (p *PostgreSQLRuleRepository) Delete(
	ctx context.Context,
	workspaceID uuid.UUID,
	subject authzDomain.Subject,
	resource authzDomain.Resource,
	action authzDomain.Action,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM rules
			  WHERE workspace_id = $1 AND subject = $2 AND resource_kind = $3 AND resource_path = $4 AND action = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		workspaceID,
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
// supplied set, ordered by id. IDs are UUIDv7, so the ordering is insertion
// order: deterministic for reproducible audit trails.
func (p *PostgreSQLRuleRepository) ListBySubjects(
	ctx context.Context,
	workspaceID uuid.UUID,
	subjects []authzDomain.Subject,
) ([]*authzDomain.Rule, error) {
	if len(subjects) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, p.db)

	placeholders := make([]string, len(subjects))
	args := make([]any, 0, len(subjects)+1)
	args = append(args, workspaceID)
	for i, subject := range subjects {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, subject.String())
	}

	query := fmt.Sprintf(
		`SELECT id, workspace_id, subject, resource_kind, resource_path, action, created_at
		 FROM rules
		 WHERE workspace_id = $1 AND subject IN (%s)
		 ORDER BY id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list rules")
	}
	defer rows.Close()

	var rules []*authzDomain.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
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

// DeleteByWorkspace removes every rule in the workspace. Used by workspace
// deletion to cascade fact removal.
func (p *PostgreSQLRuleRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM rules WHERE workspace_id = $1`

	if _, err := querier.ExecContext(ctx, query, workspaceID); err != nil {
		return apperrors.Wrap(err, "failed to delete workspace rules")
	}
	return nil
}

// scanRule reconstructs a domain rule from a row with the canonical column order.
func scanRule(rows *sql.Rows) (*authzDomain.Rule, error) {
	var rule authzDomain.Rule
	var subject, resourceKind, resourcePath, action string

	if err := rows.Scan(
		&rule.ID,
		&rule.WorkspaceID,
		&subject,
		&resourceKind,
		&resourcePath,
		&action,
		&rule.CreatedAt,
	); err != nil {
		return nil, apperrors.Wrap(err, "failed to scan rule")
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

// NewPostgreSQLRuleRepository creates a new PostgreSQL Rule repository.
func NewPostgreSQLRuleRepository(db *sql.DB) *PostgreSQLRuleRepository {
	return &PostgreSQLRuleRepository{db: db}
}
