package routes_test

import (
	"time"

	"faculty-jobs-api/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "test-secret"

// generateTestToken signs a token carrying the identity claims the auth
// middleware expects: subject, email, email_verified, and role.
func generateTestToken(p auth.Principal, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":            p.UID.String(),
		"email":          p.Email,
		"email_verified": p.EmailVerified,
		"role":           string(p.Role),
		"iat":            jwt.NewNumericDate(now),
		"exp":            jwt.NewNumericDate(now.Add(expiration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
