package auth

import (
	"faculty-jobs-api/internal/models"

	"github.com/google/uuid"
)

// Principal is the verified identity and role context for a request. It is
// built once by the auth middleware from the identity provider's claims and
// never re-derived from mutable state mid-request.
type Principal struct {
	UID           uuid.UUID
	Email         string
	EmailVerified bool
	Role          models.Role
}

// Anonymous reports whether the request carried no credential.
func (p Principal) Anonymous() bool {
	return p.UID == uuid.Nil
}

// IsAdmin reports whether the principal carries the admin role claim.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}
