// internal/api/handlers/applications.go
package handlers

import (
	"log"
	"net/http"

	"faculty-jobs-api/internal/api/middleware"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{
		service:   service,
		validator: validate,
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submits an application against an approved, non-expired job. One application per seeker per job.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Param        application body dto.CreateApplicationRequest true "Application details"
// @Success      201 {object}  dto.ApplicationResponse "Application submitted"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not a verified seeker"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      409 {object}  map[string]string "Already applied to this job"
// @Failure      422 {object}  map[string]string "Job not accepting applications"
// @Router       /jobs/{id}/applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.JobID = jobID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.Apply(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error submitting application for %s to job %s: %v", principal.UID, jobID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapApplicationModelToResponse(application))
}

// GetApplicationByID godoc
// @Summary      Get an application by ID
// @Description  Visible to the applicant, the job's poster, and admins.
// @Tags         applications
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200 {object}  dto.ApplicationResponse "Application details"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	application, err := h.service.GetByID(c.Request.Context(), principal, applicationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(application))
}

// ListMyApplications godoc
// @Summary      List the signed-in seeker's applications
// @Tags         applications
// @Produce      json
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.ApplicationResponse "Seeker's applications"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /applications/mine [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.ListApplicationsByApplicantRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	applications, err := h.service.ListMine(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, MapApplicationModelToResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListJobApplications godoc
// @Summary      List applications for a job
// @Description  Restricted to the job's poster and admins.
// @Tags         applications
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.ApplicationResponse "Job's applications"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.ListApplicationsByJobRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.JobID = jobID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	applications, err := h.service.ListByJob(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, MapApplicationModelToResponse(&applications[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateApplicationStatus godoc
// @Summary      Update an application's review status
// @Description  Allowed for the job's poster and admins. Rejected and offered are terminal.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Param        status body dto.UpdateApplicationStatusRequest true "New status and optional notes"
// @Success      200 {object}  dto.ApplicationResponse "Updated application"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      422 {object}  map[string]string "Illegal status transition"
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = applicationID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	application, err := h.service.UpdateStatus(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error updating application %s status: %v", applicationID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(application))
}
