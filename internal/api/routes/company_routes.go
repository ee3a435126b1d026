// internal/api/routes/company_routes.go
package routes

import (
	"faculty-jobs-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterCompanyRoutes registers the owner-facing company routes. Moderation
// routes live under /admin.
func RegisterCompanyRoutes(
	rg *gin.RouterGroup,
	companyHandler handlers.CompanyHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	companies := rg.Group("/companies")
	companies.Use(authMiddleware)
	{
		companies.POST("", companyHandler.CreateCompany)
		companies.GET("/me", companyHandler.GetMyCompany)
		companies.PATCH("/:id", companyHandler.UpdateCompany)
	}
}
