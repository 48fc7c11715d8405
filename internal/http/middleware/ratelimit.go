package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/campusgate/faqbot-backend/internal/http/response"
)

// RateLimitConfig holds token bucket parameters applied per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimit roughly matches 100 requests per 15 minutes with a
// burst allowance for page loads.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 0.2, BurstSize: 20}

type ipLimiter struct {
	mu       sync.Mutex
	cfg      RateLimitConfig
	limiters map[string]*rate.Limiter
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.BurstSize)
		l.limiters[ip] = lim
	}
	return lim
}

// RateLimit rejects clients that exceed the per-IP budget with a 429.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	l := &ipLimiter{cfg: cfg, limiters: make(map[string]*rate.Limiter)}
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			response.RespondError(c, http.StatusTooManyRequests, response.MsgTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
