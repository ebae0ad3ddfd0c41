package jsonwebtoken

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const maxRateLimitKeys = 10000

// RateLimiter limits operations per key with a token bucket per key. Buckets
// refill continuously at maxRate per window and hold at most maxRate tokens.
// The least recently used buckets are dropped beyond 10000 keys.
// It is safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	buckets *lru.Cache[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	closed  bool
}

// NewRateLimiter creates a limiter allowing maxRate operations per window.
// Non-positive arguments fall back to 100 per minute.
func NewRateLimiter(maxRate int, window time.Duration) *RateLimiter {
	if maxRate <= 0 {
		maxRate = 100
	}
	if window <= 0 {
		window = time.Minute
	}

	buckets, err := lru.New[string, *rate.Limiter](maxRateLimitKeys)
	if err != nil {
		panic(err)
	}
	return &RateLimiter{
		buckets: buckets,
		limit:   rate.Limit(float64(maxRate) / window.Seconds()),
		burst:   maxRate,
	}
}

// Allow reports whether one operation for key may happen now. An empty key
// is never allowed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.AllowN(key, 1)
}

// AllowN reports whether n operations for key may happen now and, if so,
// consumes them. n <= 0 is always allowed.
func (rl *RateLimiter) AllowN(key string, n int) bool {
	if n <= 0 {
		return true
	}
	if key == "" {
		return false
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.closed {
		return false
	}

	limiter, ok := rl.buckets.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.buckets.Add(key, limiter)
	}
	return limiter.AllowN(time.Now(), n)
}

// Reset forgets the bucket for key.
func (rl *RateLimiter) Reset(key string) {
	if key == "" {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if !rl.closed {
		rl.buckets.Remove(key)
	}
}

// Close drops all buckets. Afterwards every Allow call returns false.
// It is safe to call Close multiple times.
func (rl *RateLimiter) Close() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.closed {
		return
	}
	rl.closed = true
	rl.buckets.Purge()
}
