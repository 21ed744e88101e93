// Package ratelimit provides a fixed-window per-client rate limiter.
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"
)

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		RequestsPerMinute: 60,
		CleanupInterval:   5 * time.Minute,
	}
}

// Limiter counts requests per client key; the count resets after a minute
// of inactivity. A cleanup goroutine drops clients that have gone quiet
// entirely; call Stop to end it.
type Limiter struct {
	mu           sync.Mutex
	windows      map[string]*window
	denied       int64
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	perMinute       int
	cleanupInterval time.Duration
}

type window struct {
	lastSeen time.Time
	count    int
}

// NewLimiter creates a new rate limiter
func NewLimiter(config Config) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config = DefaultConfig()
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &Limiter{
		windows:         make(map[string]*window),
		stopCleanup:     make(chan struct{}),
		perMinute:       config.RequestsPerMinute,
		cleanupInterval: config.CleanupInterval,
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from the given client fits in its window.
func (rl *Limiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[client]
	if !ok || now.Sub(w.lastSeen) > time.Minute {
		rl.windows[client] = &window{lastSeen: now, count: 1}
		return true
	}

	w.count++
	w.lastSeen = now
	if w.count > rl.perMinute {
		atomic.AddInt64(&rl.denied, 1)
		return false
	}
	return true
}

func (rl *Limiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

// dropStale removes clients idle for more than 10 minutes.
func (rl *Limiter) dropStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for client, w := range rl.windows {
		if w.lastSeen.Before(cutoff) {
			delete(rl.windows, client)
		}
	}
}

// ActiveClients returns the number of currently tracked clients
func (rl *Limiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// Stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *Limiter) Stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// Metrics for monitoring rate limit performance
type Metrics struct {
	TotalDenied int64
	ClientCount int64
}

// GetMetrics returns current rate limiting metrics
func (rl *Limiter) GetMetrics() Metrics {
	return Metrics{
		TotalDenied: atomic.LoadInt64(&rl.denied),
		ClientCount: int64(rl.ActiveClients()),
	}
}
