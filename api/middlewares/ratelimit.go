package middlewares

import (
	"net/http"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hdcinema/linkstream/tool"
)

const limiterTTL = 10 * time.Minute

// PerIPRateLimit throttles download starts per client IP with a token bucket.
// Limiters for idle clients age out of the cache.
func PerIPRateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := ttlworker.NewCache[string, *rate.Limiter](limiterTTL)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter := limiters.Get(ip)
		if limiter == nil {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters.Set(ip, limiter)
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, tool.FastReturnError("Too many requests"))
			return
		}
		c.Next()
	}
}
