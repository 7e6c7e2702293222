package services

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor pairs a token bucket with the time it last served a request.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP and evicts buckets
// that have sat idle for longer than the cleanup interval.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	logger   *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, burst int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    burst,
		logger:   logger,
	}
}

// GetLimiter returns the bucket for ip, creating it on first sight and
// refreshing its idle clock.
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// StartCleanup evicts idle buckets every interval, so a long-running process
// does not accumulate one bucket per IP ever seen.
func (rl *IPRateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			rl.evictIdle(interval)
		}
	}()
}

func (rl *IPRateLimiter) evictIdle(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			evicted++
		}
	}
	if evicted > 0 {
		rl.logger.Debug("Evicted idle rate limiter buckets", "count", evicted)
	}
}
