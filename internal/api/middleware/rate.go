package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// IdleTTL drops the limiter of a client not seen for this long
	IdleTTL time.Duration
	// Skip lists exact paths that are never limited
	Skip []string
}

// DefaultRateLimitConfig returns the production rate limit configuration.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		IdleTTL:           10 * time.Minute,
		Skip:              []string{"/health", "/metrics"},
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiters holds one token bucket per client IP
type limiters struct {
	mu      sync.Mutex
	cfg     RateLimitConfig
	clients map[string]*client
	swept   time.Time
}

func (l *limiters) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cfg.IdleTTL > 0 && now.Sub(l.swept) > l.cfg.IdleTTL {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
				delete(l.clients, key)
			}
		}
		l.swept = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *limiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return rateLimit(cfg, &limiters{cfg: cfg, clients: make(map[string]*client)}, time.Now)
}

func rateLimit(cfg RateLimitConfig, l *limiters, now func() time.Time) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.Skip))
	for _, p := range cfg.Skip {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}
		if !l.allow(c.ClientIP(), now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
