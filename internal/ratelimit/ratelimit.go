// Package ratelimit enforces per-caller sliding window request limits.
package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter tracks and enforces request rate limits for a single caller
type RateLimiter struct {
	requestsPerMinute int
	requestsPerHour   int

	// Request tracking
	minuteWindow []time.Time
	hourWindow   []time.Time
	mu           sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given limits.
// A non-positive limit disables that window.
func NewRateLimiter(requestsPerMinute, requestsPerHour int) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
	}
}

// AllowAt checks whether a request at now fits in both windows and records it if so.
// The second return value is how long the caller should wait when rejected.
func (rl *RateLimiter) AllowAt(now time.Time) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	if rl.requestsPerMinute > 0 && len(rl.minuteWindow) >= rl.requestsPerMinute {
		return false, rl.minuteWindow[0].Add(time.Minute).Sub(now)
	}
	if rl.requestsPerHour > 0 && len(rl.hourWindow) >= rl.requestsPerHour {
		return false, rl.hourWindow[0].Add(time.Hour).Sub(now)
	}

	rl.minuteWindow = append(rl.minuteWindow, now)
	rl.hourWindow = append(rl.hourWindow, now)
	return true, 0
}

// idleSince reports whether no request was recorded after cutoff.
func (rl *RateLimiter) idleSince(cutoff time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := len(rl.hourWindow)
	return n == 0 || !rl.hourWindow[n-1].After(cutoff)
}

// cleanup removes expired entries from the time windows
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.minuteWindow = filterTimes(rl.minuteWindow, now.Add(-time.Minute))
	rl.hourWindow = filterTimes(rl.hourWindow, now.Add(-time.Hour))
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

// Stats contains rate limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	TrackedCallers      int  `json:"tracked_callers"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	RequestsLastMinute  int  `json:"requests_last_minute,omitempty"`
	RemainingThisMinute int  `json:"remaining_this_minute,omitempty"`
}

// Limiter keeps one RateLimiter per caller key.
type Limiter struct {
	perMinute int
	perHour   int
	enabled   bool
	now       func() time.Time

	mu       sync.Mutex
	limiters map[string]*RateLimiter
}

func New(perMinute, perHour int, enabled bool) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		perHour:   perHour,
		enabled:   enabled,
		now:       time.Now,
		limiters:  make(map[string]*RateLimiter),
	}
}

// Allow records a request for key and reports whether it is within the limits.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if !l.enabled {
		return true, 0
	}
	return l.limiter(key).AllowAt(l.now())
}

func (l *Limiter) limiter(key string) *RateLimiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	rl, ok := l.limiters[key]
	if !ok {
		rl = NewRateLimiter(l.perMinute, l.perHour)
		l.limiters[key] = rl
	}
	return rl
}

// Prune drops callers with no requests in the last hour and returns how many were removed.
func (l *Limiter) Prune() int {
	cutoff := l.now().Add(-time.Hour)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, rl := range l.limiters {
		if rl.idleSince(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// GetStats returns limiter statistics, including the window of key when it is tracked
func (l *Limiter) GetStats(key string) Stats {
	if !l.enabled {
		return Stats{Enabled: false}
	}
	l.mu.Lock()
	stats := Stats{
		Enabled:        true,
		TrackedCallers: len(l.limiters),
		LimitPerMinute: l.perMinute,
		LimitPerHour:   l.perHour,
	}
	rl := l.limiters[key]
	l.mu.Unlock()

	if rl != nil {
		rl.mu.Lock()
		rl.cleanup(l.now())
		stats.RequestsLastMinute = len(rl.minuteWindow)
		stats.RemainingThisMinute = max(0, l.perMinute-len(rl.minuteWindow))
		rl.mu.Unlock()
	}
	return stats
}

// Reset clears all tracked requests (useful for testing)
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters = make(map[string]*RateLimiter)
}
