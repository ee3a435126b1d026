// internal/api/handlers/users.go
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

// UserHandler holds dependencies for user operations.
type UserHandler struct {
	service   services.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validate,
	}
}

// SyncUser godoc
// @Summary      Sync the signed-in user
// @Description  Upserts the user record from the verified token claims. Called once after sign-in.
// @Tags         users
// @Produce      json
// @Success      200 {object}  dto.UserResponse "User record"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /users/sync [post]
// @Security     BearerAuth
func (h *UserHandler) SyncUser(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	user, err := h.service.Sync(c.Request.Context(), principal)
	if err != nil {
		log.Printf("Error syncing user %s: %v", principal.UID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}

// GetMe godoc
// @Summary      Get the signed-in user's record
// @Tags         users
// @Produce      json
// @Success      200 {object}  dto.UserResponse "User record"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "User Not Found"
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	user, err := h.service.GetByID(c.Request.Context(), principal, principal.UID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}

// UpdateProfile godoc
// @Summary      Update the signed-in user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile body dto.UpdateUserRequest true "Profile fields to update"
// @Success      200 {object}  dto.UserResponse "Updated user record"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = principal.UID
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}
	if req.DisplayName == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), principal, &req)
	if err != nil {
		log.Printf("Error updating profile for %s: %v", principal.UID, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapUserModelToUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user account. Owned companies, jobs, and applications are removed with it. Self or admin only.
// @Tags         users
// @Param        id path string true "User ID" Format(uuid)
// @Success      204 {object}  nil "User deleted"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "User Not Found"
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResendVerification godoc
// @Summary      Resend the email verification mail
// @Tags         users
// @Produce      json
// @Success      202 {object}  map[string]string "Verification mail queued"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      422 {object}  map[string]string "Email already verified"
// @Router       /users/me/resend-verification [post]
// @Security     BearerAuth
func (h *UserHandler) ResendVerification(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	if err := h.service.ResendVerification(c.Request.Context(), principal); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "verification mail queued"})
}
