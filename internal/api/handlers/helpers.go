package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error to an HTTP status and writes the JSON
// error body. Unknown errors read as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"error": "Email verification required"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPreconditionFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// FormatValidationErrors reports the first failing field only. Validator
// walks struct fields in declaration order, so the first element is stable.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	fieldError := validationErrors[0]
	fieldName := fieldError.Field()
	switch fieldError.Tag() {
	case "required":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
	case "email":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
	case "min":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
	case "max":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
	case "oneof":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
	case "url":
		errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid URL", fieldName)
	default:
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
	}
	return errorsMap
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		DisplayName:   user.DisplayName,
		Email:         user.Email,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// MapCompanyModelToCompanyResponse converts a models.Company to a dto.CompanyResponse
func MapCompanyModelToCompanyResponse(company *models.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:            company.ID,
		Name:          company.Name,
		Website:       company.Website,
		InstituteType: company.InstituteType,
		HREmail:       company.HREmail,
		Address:       company.Address,
		Phone:         company.Phone,
		ProofDocs:     company.ProofDocs,
		OwnerUID:      company.OwnerUID,
		Status:        string(company.Status),
		CreatedAt:     company.CreatedAt,
		UpdatedAt:     company.UpdatedAt,
	}
}

// MapJobModelToJobResponse converts a models.Job to a dto.JobResponse
func MapJobModelToJobResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:               job.ID,
		Title:            job.Title,
		Department:       job.Department,
		Level:            job.Level,
		InstituteType:    job.InstituteType,
		EmploymentType:   job.EmploymentType,
		City:             job.City,
		State:            job.State,
		Country:          job.Country,
		MinSalary:        job.MinSalary,
		MaxSalary:        job.MaxSalary,
		Currency:         job.Currency,
		Qualifications:   job.Qualifications,
		Skills:           job.Skills,
		Responsibilities: job.Responsibilities,
		Description:      job.Description,
		Requirements:     job.Requirements,
		LastDate:         job.LastDate,
		ApplyMode:        string(job.ApplyMode),
		ApplyURL:         job.ApplyURL,
		CompanyID:        job.CompanyID,
		PosterUID:        job.PosterUID,
		Status:           string(job.Status),
		ApprovedBy:       job.ApprovedBy,
		ApprovedAt:       job.ApprovedAt,
		ViewCount:        job.ViewCount,
		ApplicationCount: job.ApplicationCount,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

// MapApplicationModelToResponse converts a models.Application to a dto.ApplicationResponse
func MapApplicationModelToResponse(application *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:           application.ID,
		JobID:        application.JobID,
		ApplicantUID: application.ApplicantUID,
		ResumePath:   application.ResumePath,
		CoverLetter:  application.CoverLetter,
		Status:       string(application.Status),
		Notes:        application.Notes,
		CreatedAt:    application.CreatedAt,
		UpdatedAt:    application.UpdatedAt,
	}
}

// MapAuditLogModelToResponse converts a models.AuditLog to a dto.AuditLogResponse
func MapAuditLogModelToResponse(entry *models.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         entry.ID,
		ActorUID:   entry.ActorUID,
		Action:     string(entry.Action),
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Metadata:   entry.Metadata,
		Timestamp:  entry.Timestamp,
	}
}
