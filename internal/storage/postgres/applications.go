// internal/storage/postgres/applications.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ApplicationRepo implements the storage.ApplicationRepository interface using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, job_id, applicant_uid, resume_path, cover_letter, status, notes, dedupe_key, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.ApplicantUID,
		&a.ResumePath,
		&a.CoverLetter,
		&a.Status,
		&a.Notes,
		&a.DedupeKey,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create saves a new application in submitted state. The unique index on
// dedupe_key makes the duplicate check and the insert a single atomic step:
// a concurrent duplicate loses with ErrConflict, never a second row.
func (r *ApplicationRepo) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	query := fmt.Sprintf(`
		INSERT INTO applications (id, job_id, applicant_uid, resume_path, cover_letter, status, dedupe_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`, applicationColumns)

	created, err := scanApplication(r.db.QueryRow(ctx, query,
		uuid.New(),
		req.JobID,
		req.ApplicantUID,
		req.ResumePath,
		req.CoverLetter,
		models.ApplicationStatusSubmitted,
		models.DedupeKey(req.JobID, req.ApplicantUID),
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Error creating application: duplicate for job %s / applicant %s\n", req.JobID, req.ApplicantUID)
			return nil, fmt.Errorf("failed to create application: %w", storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			log.Printf("Error creating application: invalid job %s: %v\n", req.JobID, err)
			return nil, fmt.Errorf("failed to create application: invalid job: %w", storage.ErrConflict)
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// GetByID retrieves an application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)

	application, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return application, nil
}

// ListByApplicant retrieves a seeker's applications, newest first.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, req *dto.ListApplicationsByApplicantRequest) ([]models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE applicant_uid = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`, applicationColumns)

	rows, err := r.db.Query(ctx, query, req.ApplicantUID, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying applications by applicant %s: %v\n", req.ApplicantUID, err)
		return nil, fmt.Errorf("failed to query applications by applicant: %w", err)
	}
	defer rows.Close()

	applications, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		log.Printf("Error scanning applications by applicant %s: %v\n", req.ApplicantUID, err)
		return nil, fmt.Errorf("failed to scan applications by applicant: %w", err)
	}
	if applications == nil {
		applications = []models.Application{}
	}
	return applications, nil
}

// ListByJob retrieves applications for a job in submission order.
func (r *ApplicationRepo) ListByJob(ctx context.Context, req *dto.ListApplicationsByJobRequest) ([]models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE job_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, applicationColumns)

	rows, err := r.db.Query(ctx, query, req.JobID, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying applications by job %s: %v\n", req.JobID, err)
		return nil, fmt.Errorf("failed to query applications by job: %w", err)
	}
	defer rows.Close()

	applications, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		log.Printf("Error scanning applications by job %s: %v\n", req.JobID, err)
		return nil, fmt.Errorf("failed to scan applications by job: %w", err)
	}
	if applications == nil {
		applications = []models.Application{}
	}
	return applications, nil
}

// UpdateStatus changes an application's status and optional reviewer notes.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	query := fmt.Sprintf(`
		UPDATE applications
		SET status = $1, notes = COALESCE($2, notes), updated_at = NOW()
		WHERE id = $3
		RETURNING %s
	`, applicationColumns)

	updated, err := scanApplication(r.db.QueryRow(ctx, query, status, notes, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application status for %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update application status for %s: %w", id, err)
	}
	return updated, nil
}

// CountByJob returns the number of applications referencing a job.
func (r *ApplicationRepo) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications by job: %w", err)
	}
	return count, nil
}

// Count returns the total number of applications.
func (r *ApplicationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}
