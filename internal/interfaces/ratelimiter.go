package interfaces

import "context"

//go:generate mockgen -package=mock -source=ratelimiter.go -destination=mock/ratelimiter.go

// RateLimiter throttles the expensive resolution path per client identity.
// Implementations are best-effort; they are never consulted for cache hits.
type RateLimiter interface {
	// Allow records one request for id and reports whether it may proceed
	Allow(ctx context.Context, id string) bool
	// RetryAfterSeconds returns the seconds left in id's current window, 0 if none
	RetryAfterSeconds(ctx context.Context, id string) int
	// Limit returns the per-window request limit currently in force
	Limit() int
	// Prune drops expired windows
	Prune()
}
