package middleware

import (
	"strings"

	"account-panel/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware verifies the bearer token and attaches the decoded claims to
// the request context. A missing credential is 401; a token that fails
// signature or expiry checks is 403.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(401, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(token)
		if err != nil {
			c.JSON(403, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuth decodes claims when a valid bearer token is present but never
// rejects the request. Used by registration to attribute the activity record
// to an authenticated caller.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := authService.ParseToken(token); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole restricts a route to callers whose token role matches. Applied
// after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := GetClaims(c)
		if !exists {
			c.JSON(401, gin.H{"message": "Authentication required"})
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if claims.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(403, gin.H{"message": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetClaims returns the claims attached by AuthMiddleware or OptionalAuth
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
