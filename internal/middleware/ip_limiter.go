package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiterEntry: tracks a rate limiter and its last use time
type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimit: limits how often one address may open a drawing connection
type IPRateLimit struct {
	limiters map[string]*ipLimiterEntry
	every    time.Duration
	burst    int
	mu       sync.Mutex
}

// NewIPRateLimit: one connection per every, bursting up to burst
func NewIPRateLimit(every time.Duration, burst int) *IPRateLimit {
	return &IPRateLimit{
		limiters: make(map[string]*ipLimiterEntry),
		every:    every,
		burst:    burst,
	}
}

// Allow: reports whether ip may open another connection now
func (iprl *IPRateLimit) Allow(ip string) bool {
	iprl.mu.Lock()
	defer iprl.mu.Unlock()

	entry, exists := iprl.limiters[ip]
	if !exists {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rate.Every(iprl.every), iprl.burst)}
		iprl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// Cleanup: forgets addresses unseen for longer than idle
func (iprl *IPRateLimit) Cleanup(idle time.Duration) int {
	iprl.mu.Lock()
	defer iprl.mu.Unlock()

	now := time.Now()
	removed := 0
	for ip, entry := range iprl.limiters {
		if now.Sub(entry.lastSeen) > idle {
			delete(iprl.limiters, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked addresses.
func (iprl *IPRateLimit) Len() int {
	iprl.mu.Lock()
	defer iprl.mu.Unlock()

	return len(iprl.limiters)
}
