package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-client token bucket. Each analysis triggers
// two outbound network calls, so the API is throttled well below what
// the upstream services tolerate.
func RateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(clientIP string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[clientIP]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
		limiters[clientIP] = l
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, try again shortly"})
			c.Abort()
			return
		}
		c.Next()
	}
}
