// internal/storage/memory/jobs.go
package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	j := models.Job{
		ID:               uuid.New(),
		Title:            req.Title,
		Department:       req.Department,
		Level:            req.Level,
		InstituteType:    req.InstituteType,
		EmploymentType:   req.EmploymentType,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		Currency:         req.Currency,
		Qualifications:   append([]string(nil), req.Qualifications...),
		Skills:           append([]string(nil), req.Skills...),
		Responsibilities: append([]string(nil), req.Responsibilities...),
		Description:      req.Description,
		Requirements:     req.Requirements,
		LastDate:         req.LastDate,
		ApplyMode:        models.ApplyMode(req.ApplyMode),
		ApplyURL:         req.ApplyURL,
		CompanyID:        req.CompanyID,
		PosterUID:        req.PosterUID,
		Status:           models.JobStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	r.s.jobs[j.ID] = j
	r.s.jobOrder = append(r.s.jobOrder, j.ID)
	return &j, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &j, nil
}

func (r *jobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[req.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Department != nil {
		j.Department = *req.Department
	}
	if req.Level != nil {
		j.Level = *req.Level
	}
	if req.EmploymentType != nil {
		j.EmploymentType = *req.EmploymentType
	}
	if req.City != nil {
		j.City = *req.City
	}
	if req.State != nil {
		j.State = *req.State
	}
	if req.Country != nil {
		j.Country = *req.Country
	}
	if req.MinSalary != nil {
		j.MinSalary = req.MinSalary
	}
	if req.MaxSalary != nil {
		j.MaxSalary = req.MaxSalary
	}
	if req.Qualifications != nil {
		j.Qualifications = append([]string(nil), (*req.Qualifications)...)
	}
	if req.Skills != nil {
		j.Skills = append([]string(nil), (*req.Skills)...)
	}
	if req.Responsibilities != nil {
		j.Responsibilities = append([]string(nil), (*req.Responsibilities)...)
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = req.Requirements
	}
	if req.LastDate != nil {
		j.LastDate = *req.LastDate
	}
	if req.ApplyURL != nil {
		j.ApplyURL = req.ApplyURL
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	if req.ApprovedBy != nil {
		j.ApprovedBy = req.ApprovedBy
	}
	if req.ApprovedAt != nil {
		j.ApprovedAt = req.ApprovedAt
	}
	j.UpdatedAt = time.Now()
	r.s.jobs[j.ID] = j
	return &j, nil
}

func matchesQuery(j models.Job, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Description), q) {
		return true
	}
	for _, v := range j.Qualifications {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	for _, v := range j.Skills {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func matchesLocation(j models.Job, location string) bool {
	l := strings.ToLower(location)
	return strings.Contains(strings.ToLower(j.City), l) ||
		strings.Contains(strings.ToLower(j.State), l) ||
		strings.Contains(strings.ToLower(j.Country), l)
}

func postedWithinDuration(postedWithin string) time.Duration {
	switch postedWithin {
	case "24h":
		return 24 * time.Hour
	case "7d":
		return 7 * 24 * time.Hour
	case "30d":
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

func salaryOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func (r *jobRepo) Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cutoff := time.Time{}
	if window := postedWithinDuration(req.PostedWithin); window > 0 {
		cutoff = time.Now().Add(-window)
	}

	// Walk insertion order so equal sort keys stay in creation order.
	var matched []models.Job
	for _, id := range r.s.jobOrder {
		j := r.s.jobs[id]
		if j.Status != models.JobStatusApproved {
			continue
		}
		if req.Query != "" && !matchesQuery(j, req.Query) {
			continue
		}
		if req.Department != "" && j.Department != req.Department {
			continue
		}
		if req.InstituteType != "" && j.InstituteType != req.InstituteType {
			continue
		}
		if req.Level != "" && j.Level != req.Level {
			continue
		}
		if req.EmploymentType != "" && j.EmploymentType != req.EmploymentType {
			continue
		}
		if req.Location != "" && !matchesLocation(j, req.Location) {
			continue
		}
		if !cutoff.IsZero() && j.CreatedAt.Before(cutoff) {
			continue
		}
		matched = append(matched, j)
	}

	switch req.SortBy {
	case "deadline":
		sort.SliceStable(matched, func(i, k int) bool {
			return matched[i].LastDate.Before(matched[k].LastDate)
		})
	case "salary_high":
		sort.SliceStable(matched, func(i, k int) bool {
			return salaryOrZero(matched[i].MaxSalary) > salaryOrZero(matched[k].MaxSalary)
		})
	case "salary_low":
		sort.SliceStable(matched, func(i, k int) bool {
			return salaryOrZero(matched[i].MinSalary) < salaryOrZero(matched[k].MinSalary)
		})
	default: // newest
		sort.SliceStable(matched, func(i, k int) bool {
			return matched[i].CreatedAt.After(matched[k].CreatedAt)
		})
	}

	total := int64(len(matched))
	offset := (req.Page - 1) * req.Limit
	return paginate(matched, req.Limit, offset), total, nil
}

func (r *jobRepo) ListByPoster(ctx context.Context, req *dto.ListJobsByPosterRequest) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []models.Job
	for _, id := range r.s.jobOrder {
		if j := r.s.jobs[id]; j.PosterUID == req.PosterUID {
			matched = append(matched, j)
		}
	}
	sort.SliceStable(matched, func(i, k int) bool {
		return matched[i].CreatedAt.After(matched[k].CreatedAt)
	})
	return paginate(matched, req.Limit, req.Offset), nil
}

func (r *jobRepo) ListByStatus(ctx context.Context, req *dto.ListJobsByStatusRequest) ([]models.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []models.Job
	for _, id := range r.s.jobOrder {
		if j := r.s.jobs[id]; j.Status == req.Status {
			matched = append(matched, j)
		}
	}
	sort.SliceStable(matched, func(i, k int) bool {
		return matched[i].CreatedAt.Before(matched[k].CreatedAt)
	})
	return paginate(matched, req.Limit, req.Offset), nil
}

func (r *jobRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	j.ViewCount++
	r.s.jobs[id] = j
	return &j, nil
}

func (r *jobRepo) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return storage.ErrNotFound
	}
	j.ApplicationCount++
	r.s.jobs[id] = j
	return nil
}

func (r *jobRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	for id, j := range r.s.jobs {
		if j.Status == models.JobStatusApproved && j.LastDate.Before(cutoff) {
			j.Status = models.JobStatusExpired
			j.UpdatedAt = time.Now()
			r.s.jobs[id] = j
			changed++
		}
	}
	return changed, nil
}

func (r *jobRepo) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, j := range r.s.jobs {
		if j.Status == status {
			count++
		}
	}
	return count, nil
}
