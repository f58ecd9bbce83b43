package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/authz"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/jwt"
)

const identityKey = "identity"

// RequireAuth validates the bearer token and stores the acting identity on
// the context.
func RequireAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "You are not logged in. Please log in to get access")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(identityKey, authz.Identity{
			ID:   claims.UserID,
			Role: claims.Role,
		})
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok || !identity.IsAdmin() {
			response.Forbidden(c, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// Identity returns the acting identity resolved by RequireAuth.
func Identity(c *gin.Context) (authz.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return authz.Identity{}, false
	}
	identity, ok := value.(authz.Identity)
	return identity, ok
}
