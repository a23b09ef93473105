package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"bookshelf/internal/config"
	"bookshelf/internal/domain/entities"
	"bookshelf/pkg/logger"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP по алгоритму token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	interval time.Duration
}

// NewRateLimiter создает ограничитель по настройкам.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RequestsPerSec),
		burst:    cfg.Burst,
		ttl:      cfg.VisitorTTL,
		interval: cfg.CleanupInterval,
	}
}

// Run удаляет давно не активных посетителей, пока не отменен ctx.
func (r *RateLimiter) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.evict(now)
		}
	}
}

func (r *RateLimiter) evict(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ttl {
			delete(r.visitors, ip)
		}
	}
}

// Allow расходует токен посетителя ip.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, found := r.visitors[ip]
	if !found {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// Handler возвращает middleware, отвечающее 429 при превышении лимита.
func (r *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !r.Allow(c.IP()) {
			requestCtx := RequestContext(c)
			logger.Log(requestCtx).Debug(requestCtx, "rate limit exceeded", zap.String("ip", c.IP()))
			return entities.ErrTooManyRequests
		}
		return c.Next()
	}
}
