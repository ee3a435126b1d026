// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	principalCtx        = "principal" // Key to store the request principal in context
)

// identityClaims are the claims issued by the identity provider. Role and
// verification state travel in the token; the auth layer never reads the
// user table.
type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

func parsePrincipal(tokenString, jwtSecret string) (auth.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &identityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return auth.Principal{}, err
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid {
		return auth.Principal{}, errors.New("invalid token claims")
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("invalid subject in token: %w", err)
	}

	role := models.RoleSeeker
	switch models.Role(claims.Role) {
	case models.RoleSeeker, models.RoleEmployer, models.RoleAdmin:
		role = models.Role(claims.Role)
	}

	return auth.Principal{
		UID:           uid,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Role:          role,
	}, nil
}

// JWTAuthMiddleware creates a Gin middleware that requires a valid bearer
// token and stores the resulting principal in the request context.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		principal, err := parsePrincipal(headerParts[1], jwtSecret)
		if err != nil {
			log.Printf("Auth middleware: Error parsing token: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(principalCtx, principal)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware parses a bearer token when present but lets
// unauthenticated requests through with an anonymous principal. Public job
// browsing uses this.
func OptionalJWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.Next()
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.Next()
			return
		}

		if principal, err := parsePrincipal(headerParts[1], jwtSecret); err == nil {
			c.Set(principalCtx, principal)
		}
		c.Next()
	}
}

// GetPrincipal returns the request principal, or an anonymous one when the
// request carried no credential.
func GetPrincipal(c *gin.Context) auth.Principal {
	v, exists := c.Get(principalCtx)
	if !exists {
		return auth.Principal{}
	}
	p, ok := v.(auth.Principal)
	if !ok {
		return auth.Principal{}
	}
	return p
}
