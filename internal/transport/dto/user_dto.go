// internal/transport/dto/user_dto.go
package dto

import (
	"faculty-jobs-api/internal/models"
	"time"

	"github.com/google/uuid"
)

// UpdateUserRequest defines the structure for profile edits. Role is never
// bound from the request body; only the elevation workflow sets it.
type UpdateUserRequest struct {
	ID            uuid.UUID    `json:"-" validate:"required"`
	DisplayName   *string      `json:"display_name,omitempty" validate:"omitempty,min=1,max=100"`
	Role          *models.Role `json:"-"`
	EmailVerified *bool        `json:"-"` // Refreshed from identity claims on sign-in sync
}

// UserResponse defines the user data returned to the client.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"display_name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
