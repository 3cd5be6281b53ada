package ratelimit

import (
	"strings"
)

// unlimited marks liveness and metrics endpoints that are never limited.
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/uploads/" matches "/uploads/{id}/file").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Liveness and scraping are unlimited
	if method == "GET" && (path == "/health" || path == "/metrics") {
		e := unlimited
		return &e
	}

	// Try exact match first
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	// Try prefix match (for paths ending with "/")
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
