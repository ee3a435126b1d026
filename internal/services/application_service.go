package services

import (
	"context"
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

// legalStatusTransitions maps each application status to the set of states a
// reviewer may move it to. Submitted fans out freely; there is no enforced
// review order. Withdrawn is not a reviewer target.
var legalStatusTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationStatusSubmitted:   {models.ApplicationStatusReviewed, models.ApplicationStatusShortlisted, models.ApplicationStatusRejected, models.ApplicationStatusOffered},
	models.ApplicationStatusReviewed:    {models.ApplicationStatusShortlisted, models.ApplicationStatusRejected, models.ApplicationStatusOffered},
	models.ApplicationStatusShortlisted: {models.ApplicationStatusReviewed, models.ApplicationStatusRejected, models.ApplicationStatusOffered},
	models.ApplicationStatusRejected:    nil,
	models.ApplicationStatusOffered:     nil,
	models.ApplicationStatusWithdrawn:   nil,
}

func canTransition(from, to models.ApplicationStatus) bool {
	for _, allowed := range legalStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type applicationService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(store storage.Store, notifier notify.Notifier) ApplicationService {
	return &applicationService{store: store, notifier: notifier}
}

// Apply submits an application against an approved, non-expired job. The
// duplicate check, application insert, counter bump, and audit entry commit
// atomically; HR is notified after the commit.
func (s *applicationService) Apply(ctx context.Context, p auth.Principal, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := policy.CanApply(p); err != nil {
		log.Printf("ApplicationService: Apply denied for %s: %v", p.UID, err)
		return nil, mapPolicyError(err)
	}
	req.ApplicantUID = p.UID

	var application *models.Application
	var hrEmail string
	var jobTitle string
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		job, err := tx.Jobs().GetByID(ctx, req.JobID)
		if err != nil {
			return mapRepoError(err, "fetching job for application")
		}
		// Deadline first, so a stale approved job past its date reads as
		// expired even if the sweep has not run yet.
		if !job.LastDate.After(time.Now()) {
			return fmt.Errorf("%w: job application deadline has passed", ErrPreconditionFailed)
		}
		if job.Status != models.JobStatusApproved {
			return fmt.Errorf("%w: job is %s, only approved jobs accept applications", ErrPreconditionFailed, job.Status)
		}
		if job.ApplyMode != models.ApplyModeInternal {
			return fmt.Errorf("%w: job accepts applications on an external site", ErrPreconditionFailed)
		}
		jobTitle = job.Title

		if company, err := tx.Companies().GetByID(ctx, job.CompanyID); err == nil {
			hrEmail = company.HREmail
		}

		application, err = tx.Applications().Create(ctx, req)
		if err != nil {
			return mapRepoError(err, "creating application")
		}

		if err := tx.Jobs().IncrementApplicationCount(ctx, req.JobID); err != nil {
			return mapRepoError(err, "incrementing application count")
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditApplicationSubmitted,
			TargetType: "application",
			TargetID:   application.ID,
			Metadata:   map[string]string{"jobId": req.JobID.String()},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Application %s submitted by %s for job %s", application.ID, p.UID, req.JobID)
	sendNotification(s.notifier, hrEmail, notify.KindApplicationReceived, map[string]string{"jobTitle": jobTitle})
	return application, nil
}

func (s *applicationService) GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Application, error) {
	application, err := s.store.Applications().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching application")
	}
	job, err := s.store.Jobs().GetByID(ctx, application.JobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for application")
	}
	if err := policy.CanViewApplication(p, application, job); err != nil {
		return nil, mapPolicyError(err)
	}
	return application, nil
}

func (s *applicationService) ListMine(ctx context.Context, p auth.Principal, req *dto.ListApplicationsByApplicantRequest) ([]models.Application, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}
	req.ApplicantUID = p.UID
	applications, err := s.store.Applications().ListByApplicant(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing applications by applicant")
	}
	return applications, nil
}

func (s *applicationService) ListByJob(ctx context.Context, p auth.Principal, req *dto.ListApplicationsByJobRequest) ([]models.Application, error) {
	job, err := s.store.Jobs().GetByID(ctx, req.JobID)
	if err != nil {
		return nil, mapRepoError(err, "fetching job for application listing")
	}
	if err := policy.CanUpdateApplicationStatus(p, job); err != nil {
		log.Printf("ApplicationService: ListByJob on %s denied for %s: %v", req.JobID, p.UID, err)
		return nil, mapPolicyError(err)
	}
	applications, err := s.store.Applications().ListByJob(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "listing applications by job")
	}
	return applications, nil
}

// UpdateStatus moves an application along the review workflow. The status
// write and its audit entry commit together; the applicant is notified after.
func (s *applicationService) UpdateStatus(ctx context.Context, p auth.Principal, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	var updated *models.Application
	var applicantEmail string
	var previous models.ApplicationStatus
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		application, err := tx.Applications().GetByID(ctx, req.ID)
		if err != nil {
			return mapRepoError(err, "fetching application for status update")
		}
		job, err := tx.Jobs().GetByID(ctx, application.JobID)
		if err != nil {
			return mapRepoError(err, "fetching job for status update")
		}
		if err := policy.CanUpdateApplicationStatus(p, job); err != nil {
			log.Printf("ApplicationService: UpdateStatus on %s denied for %s: %v", req.ID, p.UID, err)
			return mapPolicyError(err)
		}
		if !canTransition(application.Status, req.Status) {
			return fmt.Errorf("%w: cannot move application from %s to %s", ErrPreconditionFailed, application.Status, req.Status)
		}
		previous = application.Status

		if applicant, err := tx.Users().GetByID(ctx, application.ApplicantUID); err == nil {
			applicantEmail = applicant.Email
		}

		updated, err = tx.Applications().UpdateStatus(ctx, req.ID, req.Status, req.Notes)
		if err != nil {
			return mapRepoError(err, "updating application status")
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditApplicationStatusChanged,
			TargetType: "application",
			TargetID:   req.ID,
			Metadata: map[string]string{
				"previousStatus": string(previous),
				"newStatus":      string(req.Status),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Application %s moved from %s to %s by %s", req.ID, previous, updated.Status, p.UID)
	sendNotification(s.notifier, applicantEmail, notify.KindApplicationStatusChanged, map[string]string{
		"previousStatus": string(previous),
		"newStatus":      string(updated.Status),
	})
	return updated, nil
}
