// Package ratelimit provides per-client request budgets for the HTTP server.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the caller's budget after a request was considered.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	// Group names the budget the request was charged to: an endpoint group,
	// "METHOD path" for an ungrouped endpoint, or "default".
	Group string
}

type bucket struct {
	limiter    *rate.Limiter
	limit      int
	burst      int
	lastAccess time.Time
}

// Limiter tracks one token bucket per client and endpoint group.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket sweeper. A nil config
// falls back to 1000 requests per minute for every endpoint.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{Enabled: true}
	}
	cfg := *config
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 1000
	}
	if cfg.DefaultWindow <= 0 {
		cfg.DefaultWindow = time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  &cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Enabled reports whether requests are being limited at all.
func (l *Limiter) Enabled() bool {
	return l.config.Enabled
}

// Allow consumes one token for the client on the matching endpoint.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	limit, window, burst, group := l.config.DefaultLimit, l.config.DefaultWindow, 0, "default"
	if endpoint != nil {
		if endpoint.Limit <= 0 {
			return true, Info{Allowed: true}
		}
		limit, window, burst, group = endpoint.Limit, endpoint.Window, endpoint.Burst, endpoint.key()
	}
	if burst <= 0 {
		burst = limit
	}
	if window <= 0 {
		window = l.config.DefaultWindow
	}

	now := l.now()
	b := l.bucketFor(clientID+"|"+group, limit, window, burst, now)
	allowed := b.limiter.AllowN(now, 1)
	info := status(b, now, allowed)
	info.Group = group
	return allowed, info
}

func (l *Limiter) bucketFor(key string, limit int, window time.Duration, burst int, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Limit(float64(limit) / window.Seconds())
		b = &bucket{limiter: rate.NewLimiter(every, burst), limit: limit, burst: burst}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

func status(b *bucket, now time.Time, allowed bool) Info {
	tokens := b.limiter.TokensAt(now)
	perSecond := float64(b.limiter.Limit())
	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(0, int(math.Floor(tokens))),
	}
	if perSecond <= 0 {
		info.ResetTime = now
		return info
	}
	info.ResetTime = now.Add(secondsToDuration((float64(b.burst) - tokens) / perSecond))
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return info
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(s * float64(time.Second)))
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evictIdle(l.now())
		}
	}
}

func (l *Limiter) evictIdle(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	evicted := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.config.IdleTTL {
			delete(l.buckets, key)
			evicted++
		}
	}
	return evicted
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop halts the background sweeper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
