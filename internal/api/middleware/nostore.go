package middleware

import "github.com/gin-gonic/gin"

// NoStore marks every response as uncacheable. Form responses and admin
// catalog data must never be served from an intermediary cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
