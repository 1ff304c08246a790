package middleware

import (
	"fmt"
	"net/http"
	"time"

	"planhaus/internal/logger"
	"planhaus/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests once a client exceeds limit hits per window.
// Authenticated requests are keyed by user id, anonymous ones by client IP.
func RateLimit(store ratelimit.Store, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:ip:%s", scope, c.ClientIP())
		if uid := c.GetInt("user_id"); uid != 0 {
			key = fmt.Sprintf("%s:uid:%d", scope, uid)
		}
		n, err := store.Hit(c.Request.Context(), key, window)
		if err != nil {
			// A broken limiter backend should not take the API down.
			logger.Warn("ratelimit.store_error", "scope", scope, "err", err)
			c.Next()
			return
		}
		if n > limit {
			logger.Warn("ratelimit.exceeded", "scope", scope, "key", key, "hits", n)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
