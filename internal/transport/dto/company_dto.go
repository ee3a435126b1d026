// internal/transport/dto/company_dto.go
package dto

import (
	"faculty-jobs-api/internal/models"
	"time"

	"github.com/google/uuid"
)

// --- Company Request DTOs ---

// CreateCompanyRequest defines the structure for registering an institution profile.
type CreateCompanyRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Website       *string  `json:"website,omitempty" validate:"omitempty,url"`
	InstituteType string   `json:"institute_type" validate:"required,oneof=university college research_institute school training_center other"`
	HREmail       string   `json:"hr_email" validate:"required,email"`
	Address       string   `json:"address" validate:"required"`
	Phone         *string  `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	ProofDocs     []string `json:"proof_docs" validate:"required,min=1,dive,required"`
	OwnerUID      uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// UpdateCompanyRequest defines the structure for editing a company profile.
// Status is never bound from the request body; moderation sets it internally.
type UpdateCompanyRequest struct {
	ID            uuid.UUID             `json:"-" validate:"required"`
	Name          *string               `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Website       *string               `json:"website,omitempty" validate:"omitempty,url"`
	InstituteType *string               `json:"institute_type,omitempty" validate:"omitempty,oneof=university college research_institute school training_center other"`
	HREmail       *string               `json:"hr_email,omitempty" validate:"omitempty,email"`
	Address       *string               `json:"address,omitempty"`
	Phone         *string               `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	ProofDocs     *[]string             `json:"proof_docs,omitempty" validate:"omitempty,min=1,dive,required"`
	Status        *models.CompanyStatus `json:"-"`
}

// ListCompaniesByStatusRequest defines parameters for the admin pending queue.
type ListCompaniesByStatusRequest struct {
	Status models.CompanyStatus `json:"-"`
	Limit  int                  `form:"limit,default=20" validate:"omitempty,gte=1,lte=100"`
	Offset int                  `form:"offset,default=0" validate:"omitempty,gte=0"`
}

// CompanyResponse defines the company data returned to the client.
type CompanyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Website       *string   `json:"website,omitempty"`
	InstituteType string    `json:"institute_type"`
	HREmail       string    `json:"hr_email"`
	Address       string    `json:"address"`
	Phone         *string   `json:"phone,omitempty"`
	ProofDocs     []string  `json:"proof_docs"`
	OwnerUID      uuid.UUID `json:"owner_uid"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
