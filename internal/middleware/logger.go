package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tradepool/internal/logger"
)

// RequestLogger logs method, path, status code, request latency, and
// request ID (when RequestID() ran earlier in the chain).
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=POST path=/api/v1/trades status=201 latency_ms=4
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		rid, _ := c.Get(RequestIDKey)

		logger.L().Info().
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and last seen timestamp.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory store for rate limiting.
// NOTE: a multi-instance deployment needs a shared store such as Redis.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window` (default: 60 per minute).
//   - Identifies clients by their IP address.
//   - Returns HTTP 429 Too Many Requests when exceeded.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.lastSeen) > window {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
