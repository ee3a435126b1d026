// internal/storage/memory/applications.go
package memory

import (
	"context"
	"sort"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

type applicationRepo struct{ s *Store }

// Create checks the dedupe index and inserts under one lock, mirroring the
// unique-constraint atomicity of the postgres implementation.
func (r *applicationRepo) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := models.DedupeKey(req.JobID, req.ApplicantUID)
	if _, exists := r.s.dedupeIndex[key]; exists {
		return nil, storage.ErrConflict
	}
	if _, exists := r.s.jobs[req.JobID]; !exists {
		return nil, storage.ErrConflict
	}

	now := time.Now()
	a := models.Application{
		ID:           uuid.New(),
		JobID:        req.JobID,
		ApplicantUID: req.ApplicantUID,
		ResumePath:   req.ResumePath,
		CoverLetter:  req.CoverLetter,
		Status:       models.ApplicationStatusSubmitted,
		DedupeKey:    key,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.applications[a.ID] = a
	r.s.appOrder = append(r.s.appOrder, a.ID)
	r.s.dedupeIndex[key] = a.ID
	return &a, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (r *applicationRepo) ListByApplicant(ctx context.Context, req *dto.ListApplicationsByApplicantRequest) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []models.Application
	for _, id := range r.s.appOrder {
		if a := r.s.applications[id]; a.ApplicantUID == req.ApplicantUID {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, k int) bool {
		return matched[i].CreatedAt.After(matched[k].CreatedAt)
	})
	return paginate(matched, req.Limit, req.Offset), nil
}

func (r *applicationRepo) ListByJob(ctx context.Context, req *dto.ListApplicationsByJobRequest) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []models.Application
	for _, id := range r.s.appOrder {
		if a := r.s.applications[id]; a.JobID == req.JobID {
			matched = append(matched, a)
		}
	}
	return paginate(matched, req.Limit, req.Offset), nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = notes
	}
	a.UpdatedAt = time.Now()
	r.s.applications[id] = a
	return &a, nil
}

func (r *applicationRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, a := range r.s.applications {
		if a.JobID == jobID {
			count++
		}
	}
	return count, nil
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.applications)), nil
}

// --- audit logs ---

type auditLogRepo struct{ s *Store }

func (r *auditLogRepo) Append(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := *entry
	e.ID = uuid.New()
	e.Timestamp = time.Now()
	if e.Metadata == nil {
		e.Metadata = map[string]string{}
	}
	r.s.auditLogs = append(r.s.auditLogs, e)
	return &e, nil
}

func (r *auditLogRepo) List(ctx context.Context, req *dto.ListAuditLogsRequest) ([]models.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	// Newest first.
	reversed := make([]models.AuditLog, 0, len(r.s.auditLogs))
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		reversed = append(reversed, r.s.auditLogs[i])
	}
	return paginate(reversed, req.Limit, req.Offset), nil
}
