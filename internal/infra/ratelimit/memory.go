package ratelimit

import (
	"sync"
	"time"
)

// Limiter is an in-process sliding-window guard. It is advisory UX only:
// state resets on restart and nothing stops a caller from bypassing it, so
// the authoritative check stays server-side against shared storage.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		hits:   map[string][]time.Time{},
		now:    time.Now,
	}
}

// Allow records the request and reports whether it is under the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)
	if len(recent) >= l.max {
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.max - len(l.prune(key, l.now()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetIn reports how long until the oldest recorded request leaves the
// window, i.e. when one slot frees up. Zero means a request would pass now.
func (l *Limiter) ResetIn(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)
	if len(recent) < l.max {
		return 0
	}
	return recent[0].Add(l.window).Sub(now)
}

func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// prune drops timestamps older than the window. Caller holds the lock.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	l.hits[key] = recent
	return recent
}
