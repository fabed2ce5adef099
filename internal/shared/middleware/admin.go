package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-admin/internal/shared/response"
)

// Admin rejects callers whose token does not carry the admin role.
// Must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok || role != "admin" {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
