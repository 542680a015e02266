package middleware

import (
	"net/http"
	"sync"
	"time"

	"pqapi/metrics"

	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int           // tokens refilled per interval
	burst    int           // burst capacity
	interval time.Duration // refill interval
}

type visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{tokens: rl.burst, lastUpdated: time.Now()}
		rl.visitors[ip] = v
	}

	now := time.Now()
	refill := int(now.Sub(v.lastUpdated) / rl.interval)
	if refill > 0 {
		v.tokens += refill * rl.rate
		if v.tokens > rl.burst {
			v.tokens = rl.burst
		}
		v.lastUpdated = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
