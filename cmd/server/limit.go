package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// connLimiter is a per-host token bucket for new connections.
type connLimiter struct {
	mu      sync.Mutex
	r       rate.Limit
	b       int
	hosts   map[string]*hostLimiter
	now     func() time.Time
	idleTTL time.Duration
}

type hostLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newConnLimiter(r rate.Limit, b int) *connLimiter {
	return &connLimiter{
		r:       r,
		b:       b,
		hosts:   make(map[string]*hostLimiter),
		now:     time.Now,
		idleTTL: 10 * time.Minute,
	}
}

// Allow reports whether host may open another connection now. Hosts idle
// longer than idleTTL are forgotten on the way.
func (l *connLimiter) Allow(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for h, hl := range l.hosts {
		if now.Sub(hl.lastSeen) > l.idleTTL {
			delete(l.hosts, h)
		}
	}
	hl, ok := l.hosts[host]
	if !ok {
		hl = &hostLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.hosts[host] = hl
	}
	hl.lastSeen = now
	return hl.limiter.AllowN(now, 1)
}
