// internal/api/routes/admin_routes.go
package routes

import (
	"faculty-jobs-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the moderation queues, approve/reject actions,
// stats, and the audit trail. Role enforcement happens in the services; the
// routes only require a valid token.
func RegisterAdminRoutes(
	rg *gin.RouterGroup,
	companyHandler handlers.CompanyHandlerInterface,
	jobHandler handlers.JobHandlerInterface,
	adminHandler handlers.AdminHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.GET("/companies/pending", companyHandler.ListPendingCompanies)
		admin.POST("/companies/:id/approve", companyHandler.ApproveCompany)
		admin.POST("/companies/:id/reject", companyHandler.RejectCompany)

		admin.GET("/jobs/pending", jobHandler.ListPendingJobs)
		admin.POST("/jobs/:id/approve", jobHandler.ApproveJob)
		admin.POST("/jobs/:id/reject", jobHandler.RejectJob)

		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/audit-logs", adminHandler.ListAuditLogs)
	}
}
