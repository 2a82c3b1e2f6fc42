package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID, _ := c.Get("request_id")
				log.Printf("panic recovered (request_id=%v): %v", requestID, err)
				ErrorsTotal.WithLabelValues("panic").Inc()
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
