// internal/api/handlers/admin.go
package handlers

import (
	"net/http"

	"faculty-jobs-api/internal/api/middleware"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AdminHandler holds dependencies for admin dashboard operations.
type AdminHandler struct {
	service   services.AdminService
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.AdminService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{
		service:   service,
		validator: validate,
	}
}

// GetStats godoc
// @Summary      Aggregate platform counts
// @Description  Admin only. Counts are cached briefly.
// @Tags         admin
// @Produce      json
// @Success      200 {object}  dto.StatsResponse "Platform stats"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) GetStats(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	stats, err := h.service.Stats(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListAuditLogs godoc
// @Summary      List audit trail entries
// @Description  Admin only. Newest first.
// @Tags         admin
// @Produce      json
// @Param        limit query int false "Pagination limit" default(50)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.AuditLogResponse "Audit entries"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /admin/audit-logs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.ListAuditLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	entries, err := h.service.ListAuditLogs(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, MapAuditLogModelToResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, responses)
}
