package services

import (
	"context"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// Sync upserts the user record from the verified principal. Called on
	// first sign-in; later calls return the stored record.
	Sync(ctx context.Context, p auth.Principal) (*models.User, error)
	GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, p auth.Principal, req *dto.UpdateUserRequest) (*models.User, error)
	// Delete removes a user and cascades to owned companies, jobs, and
	// applications.
	Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error
	ResendVerification(ctx context.Context, p auth.Principal) error
}

// CompanyService defines the interface for company profile and moderation logic.
type CompanyService interface {
	Create(ctx context.Context, p auth.Principal, req *dto.CreateCompanyRequest) (*models.Company, error)
	GetByOwner(ctx context.Context, p auth.Principal) (*models.Company, error)
	Update(ctx context.Context, p auth.Principal, req *dto.UpdateCompanyRequest) (*models.Company, error)
	Approve(ctx context.Context, p auth.Principal, companyID uuid.UUID) (*models.Company, error)
	Reject(ctx context.Context, p auth.Principal, companyID uuid.UUID) (*models.Company, error)
	ListPending(ctx context.Context, p auth.Principal, req *dto.ListCompaniesByStatusRequest) ([]models.Company, error)
}

// JobService defines the interface for job posting, moderation, and search logic.
type JobService interface {
	Create(ctx context.Context, p auth.Principal, req *dto.CreateJobRequest) (*models.Job, error)
	// GetByID returns the job and increments its view counter.
	GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, p auth.Principal, req *dto.UpdateJobRequest) (*models.Job, error)
	Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int64, error)
	ListMine(ctx context.Context, p auth.Principal, req *dto.ListJobsByPosterRequest) ([]models.Job, error)
	ListPending(ctx context.Context, p auth.Principal, req *dto.ListJobsByStatusRequest) ([]models.Job, error)
	Approve(ctx context.Context, p auth.Principal, jobID uuid.UUID) (*models.Job, error)
	Reject(ctx context.Context, p auth.Principal, jobID uuid.UUID) (*models.Job, error)
	// ExpireDue transitions approved jobs past their deadline to expired.
	// Invoked by the periodic sweep, not by any handler.
	ExpireDue(ctx context.Context) (int64, error)
}

// ApplicationService defines the interface for the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, p auth.Principal, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Application, error)
	ListMine(ctx context.Context, p auth.Principal, req *dto.ListApplicationsByApplicantRequest) ([]models.Application, error)
	ListByJob(ctx context.Context, p auth.Principal, req *dto.ListApplicationsByJobRequest) ([]models.Application, error)
	UpdateStatus(ctx context.Context, p auth.Principal, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
}

// AdminService defines the interface for aggregate stats and the audit trail.
type AdminService interface {
	Stats(ctx context.Context, p auth.Principal) (*dto.StatsResponse, error)
	ListAuditLogs(ctx context.Context, p auth.Principal, req *dto.ListAuditLogsRequest) ([]models.AuditLog, error)
}
