package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CallerHeader identifies the authenticated caller.
const CallerHeader = "X-User-ID"

// Middleware rejects requests over the limit with 429. Callers are keyed by
// X-User-ID, falling back to the client IP for anonymous requests.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(CallerHeader)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		ok, wait := l.Allow(key)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
