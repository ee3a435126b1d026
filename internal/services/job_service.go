package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/policy"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewJobService creates a new instance of JobService.
func NewJobService(store storage.Store, notifier notify.Notifier) JobService {
	return &jobService{store: store, notifier: notifier}
}

func (s *jobService) Create(ctx context.Context, p auth.Principal, req *dto.CreateJobRequest) (*models.Job, error) {
	company, err := s.store.Companies().GetByOwner(ctx, p.UID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: no company registered for poster", ErrPermissionDenied)
		}
		return nil, mapRepoError(err, "fetching poster company")
	}

	if err := policy.CanCreateJob(p, company); err != nil {
		log.Printf("JobService: Create denied for %s: %v", p.UID, err)
		return nil, mapPolicyError(err)
	}

	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return nil, fmt.Errorf("%w: min_salary exceeds max_salary", ErrInvalidArgument)
	}
	if !req.LastDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: last_date must be in the future", ErrInvalidArgument)
	}
	if req.ApplyMode == string(models.ApplyModeExternal) && (req.ApplyURL == nil || *req.ApplyURL == "") {
		return nil, fmt.Errorf("%w: apply_url is required for external apply mode", ErrInvalidArgument)
	}

	req.CompanyID = company.ID
	req.PosterUID = p.UID

	job, err := s.store.Jobs().Create(ctx, req)
	if err != nil {
		log.Printf("JobService: Error creating job for %s: %v", p.UID, err)
		return nil, mapRepoError(err, "creating job")
	}

	log.Printf("Job %s created by %s, awaiting moderation", job.ID, p.UID)
	return job, nil
}

// GetByID returns the job and bumps its view counter. Pending, rejected, and
// expired postings are only visible to the poster and admins.
func (s *jobService) GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Job, error) {
	job, err := s.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching job")
	}

	if job.Status != models.JobStatusApproved {
		if p.UID != job.PosterUID && !p.IsAdmin() {
			// Hidden postings read as absent rather than forbidden.
			return nil, fmt.Errorf("%w: fetching job", ErrNotFound)
		}
	}

	viewed, err := s.store.Jobs().IncrementViewCount(ctx, id)
	if err != nil {
		log.Printf("JobService: Error incrementing view count for %s: %v", id, err)
		return job, nil
	}
	return viewed, nil
}

func (s *jobService) Update(ctx context.Context, p auth.Principal, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.store.Jobs().GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for update")
	}

	if err := policy.CanUpdateJob(p, job); err != nil {
		log.Printf("JobService: Update on job %s denied for %s: %v", req.ID, p.UID, err)
		return nil, mapPolicyError(err)
	}
	if job.Status != models.JobStatusPending {
		return nil, fmt.Errorf("%w: job is %s, only pending jobs can be edited", ErrPreconditionFailed, job.Status)
	}
	if req.LastDate != nil && !req.LastDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: last_date must be in the future", ErrInvalidArgument)
	}

	updated, err := s.store.Jobs().Update(ctx, req)
	if err != nil {
		log.Printf("JobService: Error updating job %s: %v", req.ID, err)
		return nil, mapRepoError(err, "updating job")
	}
	return updated, nil
}

func (s *jobService) Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	jobs, total, err := s.store.Jobs().Search(ctx, req)
	if err != nil {
		log.Printf("JobService: Error searching jobs: %v", err)
		return nil, 0, mapRepoError(err, "searching jobs")
	}
	return jobs, total, nil
}

func (s *jobService) ListMine(ctx context.Context, p auth.Principal, req *dto.ListJobsByPosterRequest) ([]models.Job, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}
	req.PosterUID = p.UID
	jobs, err := s.store.Jobs().ListByPoster(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing jobs by poster")
	}
	return jobs, nil
}

func (s *jobService) ListPending(ctx context.Context, p auth.Principal, req *dto.ListJobsByStatusRequest) ([]models.Job, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}
	req.Status = models.JobStatusPending
	jobs, err := s.store.Jobs().ListByStatus(ctx, req)
	if err != nil {
		log.Printf("JobService: Error listing pending jobs: %v", err)
		return nil, mapRepoError(err, "listing pending jobs")
	}
	return jobs, nil
}

// Approve transitions a pending job to approved. The owning company must
// still be approved at the time of the check, not just at creation.
func (s *jobService) Approve(ctx context.Context, p auth.Principal, jobID uuid.UUID) (*models.Job, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}

	var approved *models.Job
	var posterEmail string
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		job, err := tx.Jobs().GetByID(ctx, jobID)
		if err != nil {
			return mapRepoError(err, "fetching job for approval")
		}
		if job.Status != models.JobStatusPending {
			return fmt.Errorf("%w: job is %s, only pending jobs can be approved", ErrPreconditionFailed, job.Status)
		}

		company, err := tx.Companies().GetByID(ctx, job.CompanyID)
		if err != nil {
			return mapRepoError(err, "fetching company for job approval")
		}
		if company.Status != models.CompanyStatusApproved {
			return fmt.Errorf("%w: owning company is %s", ErrPreconditionFailed, company.Status)
		}

		if poster, err := tx.Users().GetByID(ctx, job.PosterUID); err == nil {
			posterEmail = poster.Email
		}

		status := models.JobStatusApproved
		now := time.Now()
		actor := p.UID
		approved, err = tx.Jobs().Update(ctx, &dto.UpdateJobRequest{
			ID:         jobID,
			Status:     &status,
			ApprovedBy: &actor,
			ApprovedAt: &now,
		})
		if err != nil {
			return mapRepoError(err, "approving job")
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditJobApproved,
			TargetType: "job",
			TargetID:   jobID,
			Metadata:   map[string]string{"posterUid": job.PosterUID.String()},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Job %s approved by admin %s", jobID, p.UID)
	sendNotification(s.notifier, posterEmail, notify.KindJobApproved, map[string]string{"jobTitle": approved.Title})
	return approved, nil
}

// Reject transitions a pending job to rejected. Terminal.
func (s *jobService) Reject(ctx context.Context, p auth.Principal, jobID uuid.UUID) (*models.Job, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}

	var rejected *models.Job
	var posterEmail string
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		job, err := tx.Jobs().GetByID(ctx, jobID)
		if err != nil {
			return mapRepoError(err, "fetching job for rejection")
		}
		if job.Status != models.JobStatusPending {
			return fmt.Errorf("%w: job is %s, only pending jobs can be rejected", ErrPreconditionFailed, job.Status)
		}

		if poster, err := tx.Users().GetByID(ctx, job.PosterUID); err == nil {
			posterEmail = poster.Email
		}

		status := models.JobStatusRejected
		rejected, err = tx.Jobs().Update(ctx, &dto.UpdateJobRequest{ID: jobID, Status: &status})
		if err != nil {
			return mapRepoError(err, "rejecting job")
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditJobRejected,
			TargetType: "job",
			TargetID:   jobID,
			Metadata:   map[string]string{"posterUid": job.PosterUID.String()},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Job %s rejected by admin %s", jobID, p.UID)
	sendNotification(s.notifier, posterEmail, notify.KindJobRejected, map[string]string{"jobTitle": rejected.Title})
	return rejected, nil
}

// ExpireDue moves approved jobs whose deadline has passed to expired. Safe to
// run repeatedly; a job already expired is not touched again.
func (s *jobService) ExpireDue(ctx context.Context) (int64, error) {
	n, err := s.store.Jobs().ExpireBefore(ctx, time.Now())
	if err != nil {
		log.Printf("JobService: Error expiring jobs: %v", err)
		return 0, mapRepoError(err, "expiring jobs")
	}
	if n > 0 {
		log.Printf("Expired %d job(s) past their deadline", n)
	}
	return n, nil
}
