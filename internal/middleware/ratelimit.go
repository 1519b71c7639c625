package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// ChatRateLimit limits chat requests per authenticated user, falling back
// to the client IP before authentication ran.
func ChatRateLimit(perMinute, burst int) gin.HandlerFunc {
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			if claims, ok := Identity(c); ok {
				return claims.UserID
			}
			return c.ClientIP()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst), time.Hour
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many requests"})
		},
	)
}
