package ratelimit

import (
	"time"

	"github.com/jonathan/career-mentor/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleAfter       time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromConfig builds the limiter configuration from the application config.
func FromConfig(c config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         c.Enabled,
		DefaultLimit:    c.PerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    c.Burst,
		CleanupInterval: 5 * time.Minute,
		IdleAfter:       time.Hour,
		Whitelist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the stricter limits for write endpoints.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Responder-backed calls
		{Path: "/chat/sessions/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/uploads/", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// View creation and forms
		{Path: "/chat/sessions", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/uploads", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/auth/signup", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Exports build the whole CSV in one go
		{Path: "/admin/logs/export", Method: "GET", Limit: 10, Window: time.Minute, Burst: 3},
	}
}
