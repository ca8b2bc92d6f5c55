package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/utils"
)

// RateLimitMiddleware limits requests per client IP with in-process token
// buckets. State is per-instance; the service keeps no shared stores.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	window := time.Duration(cfg.RateLimitWindow) * time.Second
	limit := rate.Every(window / time.Duration(max(cfg.RateLimitReqs, 1)))

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(limit, cfg.RateLimitReqs)
		limiters[ip] = l
		return l
	}

	return func(c *gin.Context) {
		// Skip rate limiting for health checks
		if c.FullPath() == "/health" {
			c.Next()
			return
		}

		if !limiterFor(c.ClientIP()).Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RateLimitReqs))
			c.Header("X-RateLimit-Remaining", "0")

			utils.RespondWithError(c, http.StatusTooManyRequests,
				"rate_limit_exceeded",
				"Too many requests. Please try again later.",
				gin.H{
					"retry_after": cfg.RateLimitWindow,
					"limit":       cfg.RateLimitReqs,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}
