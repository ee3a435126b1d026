// internal/api/routes/application_routes.go
package routes

import (
	"faculty-jobs-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers all routes related to applications.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.GET("/mine", applicationHandler.ListMyApplications)
		applications.GET("/:id", applicationHandler.GetApplicationByID)
		applications.PATCH("/:id/status", applicationHandler.UpdateApplicationStatus)
	}
}
