package storage

import (
	"context"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	// Create returns ErrConflict when the owner already has a company.
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByOwner(ctx context.Context, ownerUID uuid.UUID) (*models.Company, error)
	Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error)
	ListByStatus(ctx context.Context, req *dto.ListCompaniesByStatusRequest) ([]models.Company, error)
	Count(ctx context.Context) (int64, error)
}

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	// Search is restricted to approved jobs and returns the total match count
	// alongside the requested page.
	Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int64, error)
	ListByPoster(ctx context.Context, req *dto.ListJobsByPosterRequest) ([]models.Job, error)
	ListByStatus(ctx context.Context, req *dto.ListJobsByStatusRequest) ([]models.Job, error)
	// IncrementViewCount atomically bumps the view counter and returns the job.
	IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// IncrementApplicationCount atomically bumps the application counter.
	IncrementApplicationCount(ctx context.Context, id uuid.UUID) error
	// ExpireBefore transitions approved jobs whose deadline passed to expired.
	// Idempotent; returns the number of rows changed.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountByStatus(ctx context.Context, status models.JobStatus) (int64, error)
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	// Create returns ErrConflict when an application with the same dedupe key
	// already exists. The uniqueness check and the insert are atomic.
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByApplicant(ctx context.Context, req *dto.ListApplicationsByApplicantRequest) ([]models.Application, error)
	ListByJob(ctx context.Context, req *dto.ListApplicationsByJobRequest) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// AuditLogRepository defines the interface for the append-only audit trail.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) (*models.AuditLog, error)
	List(ctx context.Context, req *dto.ListAuditLogsRequest) ([]models.AuditLog, error)
}

// Store aggregates the repositories behind a single persistence boundary.
// RunInTx executes fn against a transactional view of the store: either every
// write inside fn commits, or none do. Workflow transitions rely on this to
// keep entity mutations and their audit entries atomic as a unit.
type Store interface {
	Users() UserRepository
	Companies() CompanyRepository
	Jobs() JobRepository
	Applications() ApplicationRepository
	AuditLogs() AuditLogRepository
	RunInTx(ctx context.Context, fn func(Store) error) error
}
