package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/policy"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

type adminService struct {
	store storage.Store
	rdb   *redis.Client
}

// NewAdminService creates a new instance of AdminService. rdb may be nil, in
// which case stats are computed on every call.
func NewAdminService(store storage.Store, rdb *redis.Client) AdminService {
	return &adminService{store: store, rdb: rdb}
}

// Stats returns aggregate platform counts, cached briefly to keep the admin
// dashboard from hammering COUNT queries.
func (s *adminService) Stats(ctx context.Context, p auth.Principal) (*dto.StatsResponse, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats dto.StatsResponse
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("AdminService: Error caching stats: %v", err)
			}
		}
	}
	return stats, nil
}

func (s *adminService) computeStats(ctx context.Context) (*dto.StatsResponse, error) {
	users, err := s.store.Users().Count(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting users")
	}
	companies, err := s.store.Companies().Count(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting companies")
	}
	approvedJobs, err := s.store.Jobs().CountByStatus(ctx, models.JobStatusApproved)
	if err != nil {
		return nil, mapRepoError(err, "counting approved jobs")
	}
	pendingJobs, err := s.store.Jobs().CountByStatus(ctx, models.JobStatusPending)
	if err != nil {
		return nil, mapRepoError(err, "counting pending jobs")
	}
	applications, err := s.store.Applications().Count(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting applications")
	}
	return &dto.StatsResponse{
		Users:        users,
		Companies:    companies,
		ApprovedJobs: approvedJobs,
		PendingJobs:  pendingJobs,
		Applications: applications,
	}, nil
}

func (s *adminService) ListAuditLogs(ctx context.Context, p auth.Principal, req *dto.ListAuditLogsRequest) ([]models.AuditLog, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}
	logs, err := s.store.AuditLogs().List(ctx, req)
	if err != nil {
		log.Printf("AdminService: Error listing audit logs: %v", err)
		return nil, mapRepoError(err, "listing audit logs")
	}
	return logs, nil
}
