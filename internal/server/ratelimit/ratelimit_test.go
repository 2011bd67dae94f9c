package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

func fixedClock(l *Limiter, start time.Time) *time.Time {
	now := start
	l.now = func() time.Time { return now }
	return &now
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/options", "GET")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected %d remaining after request %d, got %d", 9-i, i+1, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/options", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Limit != 10 {
		t.Errorf("Expected limit 10, got %d", info.Limit)
	}
	if info.RetryAfter <= 0 || info.RetryAfter > 6*time.Second+time.Millisecond {
		t.Errorf("Expected retry after roughly 6s, got %v", info.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	now := fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 10; i++ {
		limiter.Allow("127.0.0.1", "/options", "GET")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/options", "GET"); allowed {
		t.Fatal("Expected bucket to be exhausted")
	}

	*now = now.Add(7 * time.Second)
	if allowed, _ := limiter.Allow("127.0.0.1", "/options", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/options", "GET"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("10.0.0.1", "/options", "GET"); !allowed {
		t.Fatal("Expected first client to be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.2", "/options", "GET"); !allowed {
		t.Error("Expected second client to have its own budget")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, DefaultLimit: 1})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/recommendations", "POST"); !allowed {
			t.Errorf("Expected request %d to be allowed when limiting is disabled", i+1)
		}
	}
	if limiter.Enabled() {
		t.Error("Expected Enabled to report false")
	}
}

func TestLimiter_RecommendationGroupSharesBudget(t *testing.T) {
	limiter := NewLimiter(NewConfig(true, 10, 2))
	defer limiter.Stop()
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	if allowed, _ := limiter.Allow("127.0.0.1", "/recommendations", http.MethodPost); !allowed {
		t.Fatal("Expected first recommendation request to be allowed")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/recommendations/stream", http.MethodPost); !allowed {
		t.Fatal("Expected second recommendation request to be allowed")
	}
	allowed, info := limiter.Allow("127.0.0.1", "/recommendations", http.MethodPost)
	if allowed {
		t.Error("Expected burst to be shared between recommendation endpoints")
	}
	if info.Limit != 10 {
		t.Errorf("Expected hourly limit 10, got %d", info.Limit)
	}
	if info.Group != RecommendationGroup {
		t.Errorf("Expected group %q, got %q", RecommendationGroup, info.Group)
	}

	// Other endpoints keep their own budget
	if allowed, _ := limiter.Allow("127.0.0.1", "/options", http.MethodGet); !allowed {
		t.Error("Expected /options to be unaffected")
	}
}

func TestLimiter_UnmatchedPathsShareDefaultGroup(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	if allowed, _ := limiter.Allow("127.0.0.1", "/a", http.MethodGet); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	allowed, info := limiter.Allow("127.0.0.1", "/b", http.MethodGet)
	if allowed {
		t.Error("Expected unmatched paths to share one budget")
	}
	if info.Group != "default" {
		t.Errorf("Expected group \"default\", got %q", info.Group)
	}
}

func TestLimiter_UnlimitedEndpoints(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for _, path := range []string{"/health", "/metrics"} {
		for i := 0; i < 5; i++ {
			if allowed, _ := limiter.Allow("127.0.0.1", path, http.MethodGet); !allowed {
				t.Errorf("Expected %s to be unlimited", path)
			}
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()
	fixedClock(limiter, time.Unix(1_700_000_000, 0))

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/options", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer limiter.Stop()
	now := fixedClock(limiter, time.Unix(1_700_000_000, 0))

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/options", "GET")
	}
	*now = now.Add(30 * time.Second)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/options", "GET")
	}

	*now = now.Add(45 * time.Second)
	if evicted := limiter.evictIdle(*now); evicted != 5 {
		t.Errorf("Expected 5 idle buckets evicted, got %d", evicted)
	}
	if limiter.size() != 5 {
		t.Errorf("Expected 5 buckets to remain, got %d", limiter.size())
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/recommendations", Method: "POST", Limit: 5},
		{Path: "/jobs/", Method: "POST", Limit: 7},
	}

	if got := MatchEndpoint("/recommendations", "POST", configs); got == nil || got.Limit != 5 {
		t.Errorf("Expected exact match, got %+v", got)
	}
	if got := MatchEndpoint("/jobs/42", "POST", configs); got == nil || got.Limit != 7 {
		t.Errorf("Expected prefix match, got %+v", got)
	}
	if got := MatchEndpoint("/recommendations", "GET", configs); got != nil {
		t.Errorf("Expected no match for different method, got %+v", got)
	}
	if got := MatchEndpoint("/health", "GET", configs); got == nil || got.Limit != 0 {
		t.Errorf("Expected unlimited health endpoint, got %+v", got)
	}
}
