// internal/storage/postgres/jobs.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, title, department, level, institute_type, employment_type, city, state, country, min_salary, max_salary, currency, qualifications, skills, responsibilities, description, requirements, last_date, apply_mode, apply_url, company_id, poster_uid, status, approved_by, approved_at, view_count, application_count, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Department,
		&j.Level,
		&j.InstituteType,
		&j.EmploymentType,
		&j.City,
		&j.State,
		&j.Country,
		&j.MinSalary,
		&j.MaxSalary,
		&j.Currency,
		&j.Qualifications,
		&j.Skills,
		&j.Responsibilities,
		&j.Description,
		&j.Requirements,
		&j.LastDate,
		&j.ApplyMode,
		&j.ApplyURL,
		&j.CompanyID,
		&j.PosterUID,
		&j.Status,
		&j.ApprovedBy,
		&j.ApprovedAt,
		&j.ViewCount,
		&j.ApplicationCount,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create saves a new job posting in pending state with zeroed counters.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	query := fmt.Sprintf(`
		INSERT INTO jobs (id, title, department, level, institute_type, employment_type, city, state, country, min_salary, max_salary, currency, qualifications, skills, responsibilities, description, requirements, last_date, apply_mode, apply_url, company_id, poster_uid, status, view_count, application_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, 0, 0, NOW(), NOW())
		RETURNING %s
	`, jobColumns)

	created, err := scanJob(r.db.QueryRow(ctx, query,
		uuid.New(),
		req.Title,
		req.Department,
		req.Level,
		req.InstituteType,
		req.EmploymentType,
		req.City,
		req.State,
		req.Country,
		req.MinSalary,
		req.MaxSalary,
		req.Currency,
		req.Qualifications,
		req.Skills,
		req.Responsibilities,
		req.Description,
		req.Requirements,
		req.LastDate,
		req.ApplyMode,
		req.ApplyURL,
		req.CompanyID,
		req.PosterUID,
		models.JobStatusPending,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Printf("Error creating job: invalid company %s: %v\n", req.CompanyID, err)
			return nil, fmt.Errorf("failed to create job: invalid company: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// Update modifies an existing job based on non-nil fields in the request DTO.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		argID++
	}

	if req.Title != nil {
		appendSet("title", *req.Title)
	}
	if req.Department != nil {
		appendSet("department", *req.Department)
	}
	if req.Level != nil {
		appendSet("level", *req.Level)
	}
	if req.EmploymentType != nil {
		appendSet("employment_type", *req.EmploymentType)
	}
	if req.City != nil {
		appendSet("city", *req.City)
	}
	if req.State != nil {
		appendSet("state", *req.State)
	}
	if req.Country != nil {
		appendSet("country", *req.Country)
	}
	if req.MinSalary != nil {
		appendSet("min_salary", *req.MinSalary)
	}
	if req.MaxSalary != nil {
		appendSet("max_salary", *req.MaxSalary)
	}
	if req.Qualifications != nil {
		appendSet("qualifications", *req.Qualifications)
	}
	if req.Skills != nil {
		appendSet("skills", *req.Skills)
	}
	if req.Responsibilities != nil {
		appendSet("responsibilities", *req.Responsibilities)
	}
	if req.Description != nil {
		appendSet("description", *req.Description)
	}
	if req.Requirements != nil {
		appendSet("requirements", *req.Requirements)
	}
	if req.LastDate != nil {
		appendSet("last_date", *req.LastDate)
	}
	if req.ApplyURL != nil {
		appendSet("apply_url", *req.ApplyURL)
	}
	if req.Status != nil {
		appendSet("status", *req.Status)
	}
	if req.ApprovedBy != nil {
		appendSet("approved_by", *req.ApprovedBy)
	}
	if req.ApprovedAt != nil {
		appendSet("approved_at", *req.ApprovedAt)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on job %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, jobColumns)

	updated, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job %s: %w", req.ID, err)
	}
	return updated, nil
}

// searchConditions builds the WHERE conditions shared by Search and its count
// query. Only approved postings are ever visible.
func searchConditions(req *dto.SearchJobsRequest) ([]string, []interface{}) {
	conditions := []string{"status = $1"}
	args := []interface{}{models.JobStatusApproved}

	addCondition := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if req.Query != "" {
		pattern := "%" + req.Query + "%"
		addCondition(`(title ILIKE $%[1]d OR description ILIKE $%[1]d OR array_to_string(qualifications, ' ') ILIKE $%[1]d OR array_to_string(skills, ' ') ILIKE $%[1]d)`, pattern)
	}
	if req.Department != "" {
		addCondition("department = $%d", req.Department)
	}
	if req.InstituteType != "" {
		addCondition("institute_type = $%d", req.InstituteType)
	}
	if req.Level != "" {
		addCondition("level = $%d", req.Level)
	}
	if req.EmploymentType != "" {
		addCondition("employment_type = $%d", req.EmploymentType)
	}
	if req.Location != "" {
		pattern := "%" + req.Location + "%"
		addCondition(`(city ILIKE $%[1]d OR state ILIKE $%[1]d OR country ILIKE $%[1]d)`, pattern)
	}
	if window := postedWithinDuration(req.PostedWithin); window > 0 {
		addCondition("created_at >= $%d", time.Now().Add(-window))
	}

	return conditions, args
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

// searchOrderBy maps a sort key to a deterministic ORDER BY clause. The
// created_at/id tiebreak keeps pagination stable across repeated calls.
func searchOrderBy(sortBy string) string {
	switch sortBy {
	case "deadline":
		return "ORDER BY last_date ASC, created_at ASC, id ASC"
	case "salary_high":
		return "ORDER BY COALESCE(max_salary, 0) DESC, created_at ASC, id ASC"
	case "salary_low":
		return "ORDER BY COALESCE(min_salary, 0) ASC, created_at ASC, id ASC"
	default: // newest
		return "ORDER BY created_at DESC, id ASC"
	}
}

// Search retrieves a page of approved jobs matching the filter set, plus the
// total match count for pagination.
func (r *JobRepo) Search(ctx context.Context, req *dto.SearchJobsRequest) ([]models.Job, int64, error) {
	conditions, args := searchConditions(req)
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Printf("Error counting job search results: %v\n", err)
		return nil, 0, fmt.Errorf("failed to count job search results: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	args = append(args, req.Limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s %s LIMIT $%d OFFSET $%d`,
		jobColumns, where, searchOrderBy(req.SortBy), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying job search: %v\n", err)
		return nil, 0, fmt.Errorf("failed to query job search: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning job search results: %v\n", err)
		return nil, 0, fmt.Errorf("failed to scan job search results: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, total, nil
}

// ListByPoster retrieves jobs created by a specific employer, any status.
func (r *JobRepo) ListByPoster(ctx context.Context, req *dto.ListJobsByPosterRequest) ([]models.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE poster_uid = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`, jobColumns)

	rows, err := r.db.Query(ctx, query, req.PosterUID, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying jobs by poster %s: %v\n", req.PosterUID, err)
		return nil, fmt.Errorf("failed to query jobs by poster: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs by poster %s: %v\n", req.PosterUID, err)
		return nil, fmt.Errorf("failed to scan jobs by poster: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// ListByStatus retrieves jobs with the given status, oldest first so the
// moderation queue is processed in submission order.
func (r *JobRepo) ListByStatus(ctx context.Context, req *dto.ListJobsByStatusRequest) ([]models.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, jobColumns)

	rows, err := r.db.Query(ctx, query, req.Status, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying jobs by status %s: %v\n", req.Status, err)
		return nil, fmt.Errorf("failed to query jobs by status: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs by status %s: %v\n", req.Status, err)
		return nil, fmt.Errorf("failed to scan jobs by status: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// IncrementViewCount atomically bumps the view counter and returns the job.
func (r *JobRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := fmt.Sprintf(`
		UPDATE jobs
		SET view_count = view_count + 1
		WHERE id = $1
		RETURNING %s
	`, jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error incrementing view count for job %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to increment view count for job %s: %w", id, err)
	}
	return job, nil
}

// IncrementApplicationCount atomically bumps the application counter.
func (r *JobRepo) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error incrementing application count for job %s: %v\n", id, err)
		return fmt.Errorf("failed to increment application count for job %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ExpireBefore transitions approved jobs whose deadline passed to expired.
// Re-running on already-expired jobs is a no-op.
func (r *JobRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND last_date < $3
	`, models.JobStatusExpired, models.JobStatusApproved, cutoff)
	if err != nil {
		log.Printf("Error expiring jobs before %s: %v\n", cutoff, err)
		return 0, fmt.Errorf("failed to expire jobs: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CountByStatus returns the number of jobs with the given status.
func (r *JobRepo) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs by status: %w", err)
	}
	return count, nil
}
