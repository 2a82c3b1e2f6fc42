package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware marks responses cacheable for duration
// seconds. Applied to the read-only analytics endpoints, which are
// pure functions of the stored records.
func CacheControlMiddleware(duration string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+duration)
		c.Next()
	}
}
