// internal/transport/dto/job_dto.go
package dto

import (
	"faculty-jobs-api/internal/models"
	"time"

	"github.com/google/uuid"
)

// --- Job Request DTOs ---

// CreateJobRequest defines the structure for creating a new job posting.
type CreateJobRequest struct {
	Title            string    `json:"title" validate:"required,min=3,max=200"`
	Department       string    `json:"department" validate:"required"`
	Level            string    `json:"level" validate:"required,oneof=assistant_professor associate_professor professor lecturer postdoc researcher other"`
	InstituteType    string    `json:"institute_type" validate:"required,oneof=university college research_institute school training_center other"`
	EmploymentType   string    `json:"employment_type" validate:"required,oneof=full_time part_time contract visiting"`
	City             string    `json:"city" validate:"required"`
	State            string    `json:"state" validate:"required"`
	Country          string    `json:"country" validate:"required"`
	MinSalary        *int64    `json:"min_salary,omitempty" validate:"omitempty,gte=0"`
	MaxSalary        *int64    `json:"max_salary,omitempty" validate:"omitempty,gte=0"`
	Currency         string    `json:"currency" validate:"omitempty,len=3"`
	Qualifications   []string  `json:"qualifications" validate:"required,min=1,dive,required"`
	Skills           []string  `json:"skills" validate:"omitempty,dive,required"`
	Responsibilities []string  `json:"responsibilities" validate:"omitempty,dive,required"`
	Description      string    `json:"description" validate:"required,min=20"`
	Requirements     *string   `json:"requirements,omitempty"`
	LastDate         time.Time `json:"last_date" validate:"required"`
	ApplyMode        string    `json:"apply_mode" validate:"required,oneof=internal external"`
	ApplyURL         *string   `json:"apply_url,omitempty" validate:"omitempty,url,required_if=ApplyMode external"`
	CompanyID        uuid.UUID `json:"-"` // Set internally from the poster's company
	PosterUID        uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// UpdateJobRequest defines the structure for updating a job. Moderation-only
// fields (Status, ApprovedBy, ApprovedAt) are never bound from the body.
type UpdateJobRequest struct {
	ID               uuid.UUID         `json:"-" validate:"required"`
	Title            *string           `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Department       *string           `json:"department,omitempty"`
	Level            *string           `json:"level,omitempty" validate:"omitempty,oneof=assistant_professor associate_professor professor lecturer postdoc researcher other"`
	EmploymentType   *string           `json:"employment_type,omitempty" validate:"omitempty,oneof=full_time part_time contract visiting"`
	City             *string           `json:"city,omitempty"`
	State            *string           `json:"state,omitempty"`
	Country          *string           `json:"country,omitempty"`
	MinSalary        *int64            `json:"min_salary,omitempty" validate:"omitempty,gte=0"`
	MaxSalary        *int64            `json:"max_salary,omitempty" validate:"omitempty,gte=0"`
	Qualifications   *[]string         `json:"qualifications,omitempty" validate:"omitempty,min=1,dive,required"`
	Skills           *[]string         `json:"skills,omitempty" validate:"omitempty,dive,required"`
	Responsibilities *[]string         `json:"responsibilities,omitempty" validate:"omitempty,dive,required"`
	Description      *string           `json:"description,omitempty" validate:"omitempty,min=20"`
	Requirements     *string           `json:"requirements,omitempty"`
	LastDate         *time.Time        `json:"last_date,omitempty"`
	ApplyURL         *string           `json:"apply_url,omitempty" validate:"omitempty,url"`
	Status           *models.JobStatus `json:"-"`
	ApprovedBy       *uuid.UUID        `json:"-"`
	ApprovedAt       *time.Time        `json:"-"`
}

// SearchJobsRequest defines the public job search filter set. Results are
// always restricted to approved postings.
type SearchJobsRequest struct {
	Query          string `form:"q"`
	Department     string `form:"department"`
	InstituteType  string `form:"institute_type" validate:"omitempty,oneof=university college research_institute school training_center other"`
	Level          string `form:"level" validate:"omitempty,oneof=assistant_professor associate_professor professor lecturer postdoc researcher other"`
	Location       string `form:"location"`
	EmploymentType string `form:"employment_type" validate:"omitempty,oneof=full_time part_time contract visiting"`
	PostedWithin   string `form:"posted_within,default=all" validate:"omitempty,oneof=24h 7d 30d all"`
	SortBy         string `form:"sort_by,default=newest" validate:"omitempty,oneof=newest deadline salary_high salary_low"`
	Page           int    `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit          int    `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
}

// ListJobsByPosterRequest defines parameters for an employer's own postings.
type ListJobsByPosterRequest struct {
	PosterUID uuid.UUID `json:"-"`
	Limit     int       `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
	Offset    int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListJobsByStatusRequest defines parameters for the admin pending queue.
type ListJobsByStatusRequest struct {
	Status models.JobStatus `json:"-"`
	Limit  int              `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
	Offset int              `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// JobResponse defines the job data returned to the client.
type JobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Department       string     `json:"department"`
	Level            string     `json:"level"`
	InstituteType    string     `json:"institute_type"`
	EmploymentType   string     `json:"employment_type"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Country          string     `json:"country"`
	MinSalary        *int64     `json:"min_salary,omitempty"`
	MaxSalary        *int64     `json:"max_salary,omitempty"`
	Currency         string     `json:"currency"`
	Qualifications   []string   `json:"qualifications"`
	Skills           []string   `json:"skills"`
	Responsibilities []string   `json:"responsibilities"`
	Description      string     `json:"description"`
	Requirements     *string    `json:"requirements,omitempty"`
	LastDate         time.Time  `json:"last_date"`
	ApplyMode        string     `json:"apply_mode"`
	ApplyURL         *string    `json:"apply_url,omitempty"`
	CompanyID        uuid.UUID  `json:"company_id"`
	PosterUID        uuid.UUID  `json:"poster_uid"`
	Status           string     `json:"status"`
	ApprovedBy       *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	ViewCount        int64      `json:"view_count"`
	ApplicationCount int64      `json:"application_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// JobListResponse is a paginated job search result.
type JobListResponse struct {
	Jobs    []JobResponse `json:"jobs"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
}
