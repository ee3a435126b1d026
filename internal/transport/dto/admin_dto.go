// internal/transport/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// StatsResponse carries aggregate platform counts.
type StatsResponse struct {
	Users        int64 `json:"users"`
	Companies    int64 `json:"companies"`
	ApprovedJobs int64 `json:"approved_jobs"`
	PendingJobs  int64 `json:"pending_jobs"`
	Applications int64 `json:"applications"`
}

// ListAuditLogsRequest defines parameters for the admin audit trail.
type ListAuditLogsRequest struct {
	Limit  int `form:"limit,default=50" validate:"omitempty,gte=1,lte=200"`
	Offset int `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// AuditLogResponse defines an audit entry returned to the client.
type AuditLogResponse struct {
	ID         uuid.UUID         `json:"id"`
	ActorUID   uuid.UUID         `json:"actor_uid"`
	Action     string            `json:"action"`
	TargetType string            `json:"target_type"`
	TargetID   uuid.UUID         `json:"target_id"`
	Metadata   map[string]string `json:"metadata"`
	Timestamp  time.Time         `json:"timestamp"`
}
