// internal/api/routes/job_routes.go
package routes

import (
	"faculty-jobs-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers job browsing, posting, and per-job application
// routes. Search and detail views are public with optional identity; the rest
// requires auth.
func RegisterJobRoutes(
	rg *gin.RouterGroup,
	jobHandler handlers.JobHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	authMiddleware gin.HandlerFunc,
	optionalAuthMiddleware gin.HandlerFunc,
) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", optionalAuthMiddleware, jobHandler.SearchJobs)
		jobs.GET("/mine", authMiddleware, jobHandler.ListMyJobs)
		jobs.GET("/:id", optionalAuthMiddleware, jobHandler.GetJobByID)
		jobs.POST("", authMiddleware, jobHandler.CreateJob)
		jobs.PATCH("/:id", authMiddleware, jobHandler.UpdateJob)
		jobs.POST("/:id/applications", authMiddleware, applicationHandler.Apply)
		jobs.GET("/:id/applications", authMiddleware, applicationHandler.ListJobApplications)
	}
}
