// internal/api/handlers/companies.go
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

// CompanyHandler holds dependencies for company operations.
type CompanyHandler struct {
	service   services.CompanyService
	validator *validator.Validate
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(service services.CompanyService, validate *validator.Validate) *CompanyHandler {
	return &CompanyHandler{
		service:   service,
		validator: validate,
	}
}

// CreateCompany godoc
// @Summary      Register an institution profile
// @Description  Creates a company profile for moderation. One per user; requires a verified email.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company body dto.CreateCompanyRequest true "Company details"
// @Success      201 {object}  dto.CompanyResponse "Company created, pending approval"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Email verification required"
// @Failure      409 {object}  map[string]string "Company already registered for this user"
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	company, err := h.service.Create(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error creating company for %s: %v", principal.UID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapCompanyModelToCompanyResponse(company))
}

// GetMyCompany godoc
// @Summary      Get the signed-in user's company
// @Tags         companies
// @Produce      json
// @Success      200 {object}  dto.CompanyResponse "Company profile"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "No company registered"
// @Router       /companies/me [get]
// @Security     BearerAuth
func (h *CompanyHandler) GetMyCompany(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	company, err := h.service.GetByOwner(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCompanyModelToCompanyResponse(company))
}

// UpdateCompany godoc
// @Summary      Update a company profile
// @Description  Owner-only. After approval, only phone and address stay editable.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" Format(uuid)
// @Param        company body dto.UpdateCompanyRequest true "Fields to update"
// @Success      200 {object}  dto.CompanyResponse "Updated company"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Company Not Found"
// @Failure      422 {object}  map[string]string "Field locked after approval"
// @Router       /companies/{id} [patch]
// @Security     BearerAuth
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = companyID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	company, err := h.service.Update(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error updating company %s: %v", companyID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCompanyModelToCompanyResponse(company))
}

// ListPendingCompanies godoc
// @Summary      List companies awaiting moderation
// @Description  Admin only.
// @Tags         companies
// @Produce      json
// @Param        limit query int false "Pagination limit" default(20)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.CompanyResponse "Pending companies"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /admin/companies/pending [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListPendingCompanies(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.ListCompaniesByStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	companies, err := h.service.ListPending(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, MapCompanyModelToCompanyResponse(&companies[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ApproveCompany godoc
// @Summary      Approve a pending company
// @Description  Admin only. Elevates the owner to employer and records an audit entry.
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" Format(uuid)
// @Success      200 {object}  dto.CompanyResponse "Approved company"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Company Not Found"
// @Failure      422 {object}  map[string]string "Company is not pending"
// @Router       /admin/companies/{id}/approve [post]
// @Security     BearerAuth
func (h *CompanyHandler) ApproveCompany(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	company, err := h.service.Approve(c.Request.Context(), principal, companyID)
	if err != nil {
		log.Printf("Error approving company %s: %v", companyID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCompanyModelToCompanyResponse(company))
}

// RejectCompany godoc
// @Summary      Reject a pending company
// @Description  Admin only. Terminal.
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" Format(uuid)
// @Success      200 {object}  dto.CompanyResponse "Rejected company"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Company Not Found"
// @Failure      422 {object}  map[string]string "Company is not pending"
// @Router       /admin/companies/{id}/reject [post]
// @Security     BearerAuth
func (h *CompanyHandler) RejectCompany(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID format"})
		return
	}

	company, err := h.service.Reject(c.Request.Context(), principal, companyID)
	if err != nil {
		log.Printf("Error rejecting company %s: %v", companyID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapCompanyModelToCompanyResponse(company))
}
