// internal/api/routes/user_routes.go
package routes

import (
	"faculty-jobs-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers all routes related to users.
func RegisterUserRoutes(
	rg *gin.RouterGroup,
	userHandler handlers.UserHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	users := rg.Group("/users")
	users.Use(authMiddleware)
	{
		users.POST("/sync", userHandler.SyncUser)
		users.GET("/me", userHandler.GetMe)
		users.PATCH("/me", userHandler.UpdateProfile)
		users.POST("/me/resend-verification", userHandler.ResendVerification)
		users.DELETE("/:id", userHandler.DeleteUser)
	}
}
