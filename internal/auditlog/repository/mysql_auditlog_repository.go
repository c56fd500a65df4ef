package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	auditlogDomain "github.com/allisson/gatekeeper/internal/auditlog/domain"
	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL.
// UUIDs are stored as BINARY(16) columns.
type MySQLAuditLogRepository struct {
	db *sql.DB
}

func scanMySQLAuditLog(scan func(dest ...any) error) (*auditlogDomain.AuditLog, error) {
	var log auditlogDomain.AuditLog
	var idBytes, principalIDBytes, workspaceIDBytes []byte

	if err := scan(
		&idBytes,
		&log.RequestID,
		&principalIDBytes,
		&workspaceIDBytes,
		&log.Resource,
		&log.Action,
		&log.Allowed,
		&log.Reason,
		&log.Signature,
		&log.CreatedAt,
	); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse audit log id")
	}
	log.ID = id

	principalID, err := uuid.FromBytes(principalIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse principal id")
	}
	log.PrincipalID = principalID

	workspaceID, err := uuid.FromBytes(workspaceIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse workspace id")
	}
	log.WorkspaceID = workspaceID

	return &log, nil
}

// Create appends a new audit log record.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, log *auditlogDomain.AuditLog) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := log.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}
	principalIDBytes, err := log.PrincipalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal principal id")
	}
	workspaceIDBytes, err := log.WorkspaceID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal workspace id")
	}

	query := `
		INSERT INTO audit_logs (id, request_id, principal_id, workspace_id, resource, action, allowed, reason, signature, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		log.RequestID,
		principalIDBytes,
		workspaceIDBytes,
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
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	filter auditlogDomain.ListFilter,
	offset, limit int,
) ([]*auditlogDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	query := `
		SELECT id, request_id, principal_id, workspace_id, resource, action, allowed, reason, signature, created_at
		FROM audit_logs
		WHERE 1=1
	`
	var args []any
	if filter.WorkspaceID != nil {
		workspaceIDBytes, err := filter.WorkspaceID.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal workspace id")
		}
		query += " AND workspace_id = ?"
		args = append(args, workspaceIDBytes)
	}
	if filter.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *filter.Since)
	}
	if filter.Until != nil {
		query += " AND created_at < ?"
		args = append(args, *filter.Until)
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer rows.Close()

	var logs []*auditlogDomain.AuditLog
	for rows.Next() {
		log, err := scanMySQLAuditLog(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return logs, nil
}

// DeleteOlderThan expires records created before the cutoff. Returns how many
// were removed.
func (m *MySQLAuditLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM audit_logs WHERE created_at < ?`

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

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
