package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(10), 5, slog.Default())
	ip := "192.168.1.1"

	l1 := limiter.GetLimiter(ip)
	assert.NotNil(t, l1)
	assert.Equal(t, rate.Limit(10), l1.Limit())
	assert.Equal(t, 5, l1.Burst())

	// Same IP gets the same bucket
	l2 := limiter.GetLimiter(ip)
	assert.Equal(t, l1, l2)

	l3 := limiter.GetLimiter("1.1.1.1")
	assert.NotSame(t, l1, l3)
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1, slog.Default())

	stale := limiter.GetLimiter("10.0.0.1")
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.GetLimiter("10.0.0.2")

	limiter.evictIdle(10 * time.Minute)

	limiter.mu.Lock()
	_, staleKept := limiter.visitors["10.0.0.1"]
	_, freshKept := limiter.visitors["10.0.0.2"]
	limiter.mu.Unlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)

	// A returning IP gets a fresh bucket
	assert.NotSame(t, stale, limiter.GetLimiter("10.0.0.1"))
}

func TestIPRateLimiter_StartCleanup(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1, slog.Default())

	limiter.GetLimiter("10.0.0.3")
	limiter.visitors["10.0.0.3"].lastSeen = time.Now().Add(-time.Hour)

	limiter.StartCleanup(10 * time.Millisecond)

	assert.Eventually(t, func() bool {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		return len(limiter.visitors) == 0
	}, time.Second, 10*time.Millisecond)
}
