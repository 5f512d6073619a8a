package main

import (
	"go-image-cache/internal/config"
)

// runtimeSettings adapts the environment to the settings func consumed by
// the resolver, providers and storage gateway. Every call re-reads the env.
func runtimeSettings() config.Runtime {
	return config.LoadRuntime()
}

// rateLimitPerMinute adapts RATE_LIMIT_PER_MINUTE to the limiter's limit func
func rateLimitPerMinute() int {
	return config.LoadRuntime().RateLimitPerMinute
}
