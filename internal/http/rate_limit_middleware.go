package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"saju-mbti/internal/service"
)

// RateLimitMiddleware limita requests por IP del cliente. Sin limiter no hace nada.
func RateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
			c.Abort()
			return
		}
		c.Next()
	}
}
