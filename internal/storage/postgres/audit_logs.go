// internal/storage/postgres/audit_logs.go
package postgres

import (
	"context"
	"fmt"
	"log"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuditLogRepo implements the storage.AuditLogRepository interface using PostgreSQL.
// The table is append-only: there is no update or delete path.
type AuditLogRepo struct {
	db Querier
}

// Compile-time check to ensure AuditLogRepo implements AuditLogRepository
var _ storage.AuditLogRepository = (*AuditLogRepo)(nil)

const auditLogColumns = `id, actor_uid, action, target_type, target_id, metadata, timestamp`

// Append writes one audit entry. Callers run it inside the same transaction
// as the mutation it records.
func (r *AuditLogRepo) Append(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	query := fmt.Sprintf(`
		INSERT INTO audit_logs (id, actor_uid, action, target_type, target_id, metadata, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`, auditLogColumns)

	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	var created models.AuditLog
	err := r.db.QueryRow(ctx, query,
		uuid.New(),
		entry.ActorUID,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		metadata,
	).Scan(
		&created.ID,
		&created.ActorUID,
		&created.Action,
		&created.TargetType,
		&created.TargetID,
		&created.Metadata,
		&created.Timestamp,
	)
	if err != nil {
		log.Printf("Error appending audit log (%s on %s %s): %v\n", entry.Action, entry.TargetType, entry.TargetID, err)
		return nil, fmt.Errorf("failed to append audit log: %w", err)
	}
	return &created, nil
}

// List retrieves audit entries, newest first.
func (r *AuditLogRepo) List(ctx context.Context, req *dto.ListAuditLogsRequest) ([]models.AuditLog, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM audit_logs
		ORDER BY timestamp DESC, id ASC
		LIMIT $1 OFFSET $2
	`, auditLogColumns)

	rows, err := r.db.Query(ctx, query, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying audit logs: %v\n", err)
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		log.Printf("Error scanning audit logs: %v\n", err)
		return nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}
