// Package ratelimit provides a keyed token-bucket limiter for throttling
// per-client request rates on sensitive endpoints.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands out a token bucket per key (typically a client IP) and
// prunes buckets that have gone idle.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit rate.Limit
	burst int

	idleTimeout time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter that allows the given number of events per interval
// with the given burst size.
func New(events int, interval time.Duration, burst int) *Limiter {
	return &Limiter{
		buckets:     make(map[string]*bucket),
		limit:       rate.Every(interval / time.Duration(events)),
		burst:       burst,
		idleTimeout: 10 * time.Minute,
	}
}

// Allow reports whether the event identified by key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()

	return b.limiter.Allow()
}

// Prune drops buckets that have not been touched within the idle timeout.
// Called periodically so the map does not grow without bound.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.idleTimeout)
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Size returns the number of tracked keys.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buckets)
}
