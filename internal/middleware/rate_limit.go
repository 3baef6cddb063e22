package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	pkgErrors "sos-srv/pkg/errors"
	"sos-srv/pkg/response"
	"sos-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig limits requests per caller. Callers are keyed by user id
// when authenticated and by client IP otherwise.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	TTL   time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	if cfg.TTL <= 0 {
		cfg.TTL = 3 * time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		ttl:      cfg.TTL,
	}
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *rateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

func (l *rateLimiter) runCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.cleanup(now)
		}
	}
}

// RateLimit returns a per caller limiter. Its cleanup goroutine stops with
// ctx. A non positive RPS disables limiting.
func (m Middleware) RateLimit(ctx context.Context, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	l := newRateLimiter(cfg)
	go l.runCleanup(ctx)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if sc, ok := scope.GetScopeFromContext(c.Request.Context()); ok && sc.IsAuthenticated() {
			key = "user:" + sc.UserID
		}

		if !l.allow(key, time.Now()) {
			m.l.Warnf(c.Request.Context(), "Rate limit exceeded | Key: %s | Path: %s", key, c.Request.URL.Path)
			response.HttpError(c, pkgErrors.NewKindHTTPError(http.StatusTooManyRequests, pkgErrors.KindRateLimited, "Too many requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}
