package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"horticulture-assistant/pkg/response"
)

// clientLimiters holds one token bucket per client IP.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[key]
	if !ok {
		lim = rate.NewLimiter(c.limit, c.burst)
		c.limiters[key] = lim
	}
	return lim
}

// RateLimit applies a per-client token bucket. Disabled limiting is a no-op
// handler so the chain stays uniform.
func (m Middleware) RateLimit() gin.HandlerFunc {
	if !m.cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	clients := &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(m.cfg.PerMinute) / 60.0),
		burst:    m.cfg.Burst,
	}

	return func(c *gin.Context) {
		if !clients.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Resp{
				ErrorCode: http.StatusTooManyRequests,
				Message:   "Too many requests",
			})
			return
		}
		c.Next()
	}
}
