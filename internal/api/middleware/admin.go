package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the shared admin secret on mutating catalog
// requests.
const AdminKeyHeader = "x-admin-key"

// RequireAdminKey gates catalog mutations behind the configured shared
// secret. An empty configured key locks the admin surface entirely, so a
// missing ADMIN_API_KEY can never mean "open".
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.GetHeader(AdminKeyHeader) != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}
		c.Next()
	}
}
