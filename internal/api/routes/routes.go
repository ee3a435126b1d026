// internal/api/routes/routes.go
package routes

import (
	"log"

	"faculty-jobs-api/internal/api/handlers"
	"faculty-jobs-api/internal/api/middleware"
	"faculty-jobs-api/internal/app"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// Create handlers
	userHandler := handlers.NewUserHandler(app.UserService, app.Validator)
	companyHandler := handlers.NewCompanyHandler(app.CompanyService, app.Validator)
	jobHandler := handlers.NewJobHandler(app.JobService, app.Validator)
	applicationHandler := handlers.NewApplicationHandler(app.ApplicationService, app.Validator)
	adminHandler := handlers.NewAdminHandler(app.AdminService, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	optionalAuthMiddleware := middleware.OptionalJWTAuthMiddleware(app.Config.JWT.Secret)

	// --- Register Resource Routes ---
	RegisterUserRoutes(apiV1, userHandler, authMiddleware)
	RegisterCompanyRoutes(apiV1, companyHandler, authMiddleware)
	RegisterJobRoutes(apiV1, jobHandler, applicationHandler, authMiddleware, optionalAuthMiddleware)
	RegisterApplicationRoutes(apiV1, applicationHandler, authMiddleware)
	RegisterAdminRoutes(apiV1, companyHandler, jobHandler, adminHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Routes registered")
}
