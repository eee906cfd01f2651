package ratelimiter

import (
	"sync"
	"time"
)

// Config comes from the environment; the limiter guards the form surface so
// a misbehaving console cannot hammer the remote Booking API through us.
type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Limiter is the check the HTTP middleware performs per client.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// FixedWindowRateLimiter counts requests per key inside a fixed window and
// resets all counters when the window rolls over.
type FixedWindowRateLimiter struct {
	sync.RWMutex
	counts map[string]int
	limit  int
	window time.Duration
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		counts: make(map[string]int),
		limit:  limit,
		window: window,
	}
	go rl.cleanup()
	return rl
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	if rl.counts[key] >= rl.limit {
		return false, rl.window
	}
	rl.counts[key]++
	return true, 0
}

func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	for range ticker.C {
		rl.Lock()
		rl.counts = make(map[string]int)
		rl.Unlock()
	}
}
