// internal/transport/dto/application_dto.go
package dto

import (
	"faculty-jobs-api/internal/models"
	"time"

	"github.com/google/uuid"
)

// --- Application Request DTOs ---

// CreateApplicationRequest defines the structure for applying to a job.
// ResumePath references an already-uploaded document in the blob store.
type CreateApplicationRequest struct {
	ResumePath   string    `json:"resume_path" validate:"required"`
	CoverLetter  *string   `json:"cover_letter,omitempty" validate:"omitempty,max=5000"`
	JobID        uuid.UUID `json:"-"` // From URL path
	ApplicantUID uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// UpdateApplicationStatusRequest defines the structure for a reviewer status change.
// Withdrawn is not an accepted target; no workflow transition reaches it.
type UpdateApplicationStatusRequest struct {
	ID     uuid.UUID                `json:"-" validate:"required"`
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=reviewed shortlisted rejected offered"`
	Notes  *string                  `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListApplicationsByApplicantRequest defines parameters for a seeker's own applications.
type ListApplicationsByApplicantRequest struct {
	ApplicantUID uuid.UUID `json:"-"`
	Limit        int       `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
	Offset       int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ListApplicationsByJobRequest defines parameters for listing a job's applications.
type ListApplicationsByJobRequest struct {
	JobID  uuid.UUID `json:"-"`
	Limit  int       `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
	Offset int       `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// ApplicationResponse defines the application data returned to the client.
type ApplicationResponse struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	ApplicantUID uuid.UUID `json:"applicant_uid"`
	ResumePath   string    `json:"resume_path"`
	CoverLetter  *string   `json:"cover_letter,omitempty"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
