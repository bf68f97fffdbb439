package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter holds a token bucket per client IP.
type RateLimiter struct {
	limiters   map[string]*rate.Limiter
	mu         sync.Mutex
	rate       rate.Limit
	bucketSize int
}

func NewRateLimiter(perSecond float64, bucketSize int) *RateLimiter {
	return &RateLimiter{
		limiters:   make(map[string]*rate.Limiter),
		rate:       rate.Limit(perSecond),
		bucketSize: bucketSize,
	}
}

func (rl *RateLimiter) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.limiters[client]; ok {
		return l
	}
	l := rate.NewLimiter(rl.rate, rl.bucketSize)
	rl.limiters[client] = l
	return l
}

// RateLimit rejects requests once a client's bucket is drained.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status_code": http.StatusTooManyRequests,
				"message":     "Rate limit exceeded",
				"error":       "Too many requests, try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
