package services

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips    map[string]*ipEntry
	mu     sync.Mutex
	r      rate.Limit
	b      int
	logger *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, b int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*ipEntry),
		r:      r,
		b:      b,
		logger: logger,
	}
}

// StartCleanup evicts entries idle for longer than the interval, keeping
// the map bounded in a long-running process.
func (i *IPRateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			cutoff := time.Now().Add(-interval)
			i.mu.Lock()
			before := len(i.ips)
			for ip, entry := range i.ips {
				if entry.lastSeen.Before(cutoff) {
					delete(i.ips, ip)
				}
			}
			if evicted := before - len(i.ips); evicted > 0 {
				i.logger.Info("Evicted idle rate limiter entries", "evicted", evicted, "remaining", len(i.ips))
			}
			i.mu.Unlock()
		}
	}()
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}
