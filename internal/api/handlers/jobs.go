// internal/api/handlers/jobs.go
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

// JobHandler holds dependencies for job operations.
type JobHandler struct {
	service   services.JobService
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobService, validate *validator.Validate) *JobHandler {
	return &JobHandler{
		service:   service,
		validator: validate,
	}
}

// CreateJob godoc
// @Summary      Create a new job posting
// @Description  Posts a job under the caller's approved company. The posting starts in pending and is not publicly visible until approved.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job body dto.CreateJobRequest true "Job details"
// @Success      201 {object}  dto.JobResponse "Job created, pending approval"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not an employer with an approved company"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.Create(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error creating job for %s: %v", principal.UID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapJobModelToJobResponse(job))
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Description  Retrieves a job posting and increments its view counter. Pending, rejected, and expired postings are only visible to the poster and admins.
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Job details"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.GetByID(c.Request.Context(), principal, jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// SearchJobs godoc
// @Summary      Search approved job postings
// @Description  Public search across approved postings with filters, sorting, and pagination.
// @Tags         jobs
// @Produce      json
// @Param        q query string false "Text query across title, description, qualifications, skills"
// @Param        department query string false "Department filter"
// @Param        institute_type query string false "Institute type filter" Enums(university, college, research_institute, school, training_center, other)
// @Param        level query string false "Level filter" Enums(assistant_professor, associate_professor, professor, lecturer, postdoc, researcher, other)
// @Param        location query string false "Location substring (city, state, country)"
// @Param        employment_type query string false "Employment type filter" Enums(full_time, part_time, contract, visiting)
// @Param        posted_within query string false "Posting age window" Enums(24h, 7d, 30d, all) default(all)
// @Param        sort_by query string false "Sort order" Enums(newest, deadline, salary_high, salary_low) default(newest)
// @Param        page query int false "1-indexed page" default(1)
// @Param        limit query int false "Page size (max 100)" default(20)
// @Success      200 {object}  dto.JobListResponse "Paginated search results"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Router       /jobs [get]
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	jobs, total, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error searching jobs: %v", err)
		respondError(c, err)
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, dto.JobListResponse{
		Jobs:    responses,
		Total:   total,
		Page:    req.Page,
		Limit:   req.Limit,
		HasMore: int64(req.Page*req.Limit) < total,
	})
}

// UpdateJob godoc
// @Summary      Update a pending job posting
// @Description  Poster only; allowed while the posting is pending.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Param        job body dto.UpdateJobRequest true "Fields to update"
// @Success      200 {object}  dto.JobResponse "Updated job"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      422 {object}  map[string]string "Job is no longer editable"
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = jobID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	job, err := h.service.Update(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error updating job %s: %v", jobID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// ListMyJobs godoc
// @Summary      List the signed-in employer's postings
// @Tags         jobs
// @Produce      json
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.JobResponse "Employer's postings, all statuses"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /jobs/mine [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.ListJobsByPosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListMine(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListPendingJobs godoc
// @Summary      List jobs awaiting moderation
// @Description  Admin only.
// @Tags         jobs
// @Produce      json
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.JobResponse "Pending jobs"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /admin/jobs/pending [get]
// @Security     BearerAuth
func (h *JobHandler) ListPendingJobs(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.ListJobsByStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	jobs, err := h.service.ListPending(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, MapJobModelToJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ApproveJob godoc
// @Summary      Approve a pending job
// @Description  Admin only. The owning company must still be approved.
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Approved job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      422 {object}  map[string]string "Job or company not in an approvable state"
// @Router       /admin/jobs/{id}/approve [post]
// @Security     BearerAuth
func (h *JobHandler) ApproveJob(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.Approve(c.Request.Context(), principal, jobID)
	if err != nil {
		log.Printf("Error approving job %s: %v", jobID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}

// RejectJob godoc
// @Summary      Reject a pending job
// @Description  Admin only. Terminal.
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200 {object}  dto.JobResponse "Rejected job"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Job Not Found"
// @Failure      422 {object}  map[string]string "Job is not pending"
// @Router       /admin/jobs/{id}/reject [post]
// @Security     BearerAuth
func (h *JobHandler) RejectJob(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID format"})
		return
	}

	job, err := h.service.Reject(c.Request.Context(), principal, jobID)
	if err != nil {
		log.Printf("Error rejecting job %s: %v", jobID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapJobModelToJobResponse(job))
}
