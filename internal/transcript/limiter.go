package transcript

import (
	"context"
	"sync"
	"time"
)

// Default rate-limit configuration: 10 requests per client per hour,
// with stale entries swept every 10 minutes.
const (
	DefaultMaxRequests   = 10
	DefaultWindow        = time.Hour
	DefaultSweepInterval = 10 * time.Minute
)

// LimitResult is the outcome of a single admission check.
type LimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// limitEntry tracks one client's request count inside its current window.
type limitEntry struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window per-client request counter. It owns the
// only shared mutable table in the service; all access to an entry is a
// critical section under mu, including the periodic sweep. The lock is
// never held across the downstream fetch, so a slow external call cannot
// block other clients' admission decisions.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limitEntry
	max     int
	window  time.Duration
}

// NewRateLimiter returns a limiter admitting at most max requests per
// client per window. Non-positive arguments fall back to the defaults.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RateLimiter{
		entries: make(map[string]*limitEntry),
		max:     max,
		window:  window,
	}
}

// Max returns the configured per-window request limit.
func (l *RateLimiter) Max() int { return l.max }

// Check records one request attempt from clientID at time now and decides
// admission. The first request in a window is always admitted; once the
// count reaches the limit, further requests are rejected until the window
// elapses. Rejected requests do not extend the window.
func (l *RateLimiter) Check(clientID string, now time.Time) LimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.entries[clientID]
	if !ok || now.Sub(ent.windowStart) > l.window {
		// First sight of this client, or its previous window has elapsed.
		l.entries[clientID] = &limitEntry{count: 1, windowStart: now}
		return LimitResult{Allowed: true, Remaining: l.max - 1, ResetIn: l.window}
	}

	resetIn := l.window - now.Sub(ent.windowStart)
	if ent.count >= l.max {
		return LimitResult{Allowed: false, Remaining: 0, ResetIn: resetIn}
	}

	ent.count++
	return LimitResult{Allowed: true, Remaining: l.max - ent.count, ResetIn: resetIn}
}

// Sweep removes entries whose window fully elapsed before now and returns
// how many were removed. It takes the same lock as Check, so it never
// observes an entry mid-update.
func (l *RateLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, ent := range l.entries {
		if now.Sub(ent.windowStart) > l.window {
			delete(l.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients. Used for metrics.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Run sweeps on a fixed interval until ctx is cancelled. The caller owns
// the goroutine: typically `go limiter.Run(ctx, interval, nil)` from main.
// onSweep, if non-nil, is called with the number of removed entries.
func (l *RateLimiter) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			removed := l.Sweep(now)
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
