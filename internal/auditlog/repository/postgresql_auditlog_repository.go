// Package repository implements audit log persistence for PostgreSQL and MySQL.
// The audit trail is append-only: records are created, listed, verified, and
// eventually expired, never updated.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// PostgreSQLAuditLogRepository implements AuditLog persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create appends a new audit log record.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, log *auditlogDomain.AuditLog) error {
	querier := database.GetTx(ctx, p.db)

	query := `
		INSERT INTO audit_logs (id, request_id, principal_id, workspace_id, resource, action, allowed, reason, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := querier.ExecContext(
		ctx,
		query,
		log.ID,
		log.RequestID,
		log.PrincipalID,
		log.WorkspaceID,
		log.Resource,
		log.Action,
		log.Allowed,
		log.Reason,
		log.Signature,
		log.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

// List retrieves audit log records matching the filter, in insertion order,
// with pagination support.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
	offset, limit int,
) ([]*auditlogDomain.AuditLog, error) {
	querier := database.GetTx(ctx, p.db)

	query := `
		SELECT id, request_id, principal_id, workspace_id, resource, action, allowed, reason, signature, created_at
		FROM audit_logs
		WHERE 1=1
	`
	var args []any
	if filter.WorkspaceID != nil {
		args = append(args, *filter.WorkspaceID)
		query += fmt.Sprintf(" AND workspace_id = $%d", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer rows.Close()

	var logs []*auditlogDomain.AuditLog
	for rows.Next() {
		var log auditlogDomain.AuditLog
		if err := rows.Scan(
			&log.ID,
			&log.RequestID,
			&log.PrincipalID,
			&log.WorkspaceID,
			&log.Resource,
			&log.Action,
			&log.Allowed,
			&log.Reason,
			&log.Signature,
			&log.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return logs, nil
}

// DeleteOlderThan expires records created before the cutoff. Returns how many
// were removed.
func (p *PostgreSQLAuditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM audit_logs WHERE created_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}
