package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/types/api/responses"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL         = 10 * time.Minute
	limiterCleanupInterval = 5 * time.Minute
)

// RateLimiter applies a token bucket per calling client
type RateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	skip     map[string]bool
}

type limiterEntry struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	seen    time.Time
}

func (e *limiterEntry) touch(now time.Time) {
	e.mu.Lock()
	e.seen = now
	e.mu.Unlock()
}

func (e *limiterEntry) idleSince(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.seen)
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given
// burst. Health checks are never limited.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
		skip:  map[string]bool{"/health": true, "/healthz": true},
	}
}

// Run evicts idle client buckets until ctx is done
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.limiters.Range(func(key, value interface{}) bool {
		if value.(*limiterEntry).idleSince(now) > limiterIdleTTL {
			rl.limiters.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()
	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.touch(now)
		return entry.limiter
	}
	entry := &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst), seen: now}
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// clientIdentifier keys buckets by API key prefix, then by the first
// forwarded address, then by the peer address.
func clientIdentifier(c *gin.Context) string {
	if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
		if len(apiKey) > 8 {
			apiKey = apiKey[:8]
		}
		return "api:" + apiKey
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return "ip:" + strings.TrimSpace(first)
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:unknown"
}

// Middleware returns a Gin middleware handler for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	limit := strconv.Itoa(rl.burst)
	return func(c *gin.Context) {
		if rl.skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		clientID := clientIdentifier(c)
		limiter := rl.limiterFor(clientID)
		reset := strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10)
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Reset", reset)

		if !limiter.Allow() {
			LogWithCorrelationID(c.Request.Context(), logger.ComponentMiddleware).Warn("Rate limit exceeded",
				zap.String("client_id", clientID),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Error:         "too many requests, retry later",
				Code:          "rate_limited",
				CorrelationID: GetCorrelationID(c),
			})
			return
		}

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}

// DefaultRateLimiter guards the public API
var DefaultRateLimiter = NewRateLimiter(100, 200)
