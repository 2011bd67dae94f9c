package ratelimit

import (
	"net/http"
	"time"
)

// RecommendationGroup is the shared budget for both recommendation endpoints.
const RecommendationGroup = "recommendations"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Group  string        // Budget key shared by endpoints in the same group (defaults to Path)
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	EndpointConfigs []EndpointConfig
}

// NewConfig builds the server's limiter configuration. Recommendation calls are
// budgeted per client at perHour requests with the given burst; everything else
// falls back to the default limit.
func NewConfig(enabled bool, perHour, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		EndpointConfigs: RecommendationEndpoints(perHour, burst),
	}
}

// RecommendationEndpoints returns the limits for the model-backed endpoints.
func RecommendationEndpoints(perHour, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Group: RecommendationGroup, Path: "/recommendations", Method: http.MethodPost, Limit: perHour, Window: time.Hour, Burst: burst},
		{Group: RecommendationGroup, Path: "/recommendations/stream", Method: http.MethodPost, Limit: perHour, Window: time.Hour, Burst: burst},
	}
}

func (c EndpointConfig) key() string {
	if c.Group != "" {
		return c.Group
	}
	return c.Method + " " + c.Path
}
