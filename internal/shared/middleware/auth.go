package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-admin/internal/shared/response"
	"storefront-admin/pkg/jwt"
)

// Auth validates the Bearer token and stores the caller's identity on the
// context. Tokens are issued by the external identity provider; this layer
// only verifies and decodes them.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Validate(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}
