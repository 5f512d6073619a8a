package ratelimit

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"go-image-cache/internal/interfaces"
)

// Ensure KeyDBWindow implements interfaces.RateLimiter
var _ interfaces.RateLimiter = (*KeyDBWindow)(nil)

// KeyDBWindow counts fixed windows in KeyDB with INCR + EXPIRE so several
// instances can share one counter. KeyDB errors fail open.
type KeyDBWindow struct {
	client interfaces.KeyDbClient
	prefix string
	length time.Duration
	limit  func() int
	logger *zap.Logger
}

// noExpiry is the TTL KeyDB reports for a key that exists without an expiry
const noExpiry = time.Duration(-1)

// NewKeyDBWindow creates a KeyDB-backed fixed-window limiter
func NewKeyDBWindow(client interfaces.KeyDbClient, prefix string, length time.Duration, limit func() int, logger *zap.Logger) *KeyDBWindow {
	if length <= 0 {
		length = DefaultWindow
	}
	return &KeyDBWindow{
		client: client,
		prefix: prefix + "rl:",
		length: length,
		limit:  limit,
		logger: logger,
	}
}

// Allow increments id's counter and reports whether it stays within the limit
func (kw *KeyDBWindow) Allow(ctx context.Context, id string) bool {
	limit := kw.limit()
	key := kw.prefix + id

	count, err := kw.client.Incr(ctx, key).Result()
	if err != nil {
		kw.logger.Warn("Rate limit counter unavailable, allowing request", zap.String("id", id), zap.Error(err))
		return true
	}

	if count == 1 {
		kw.setExpiry(ctx, id, key)
	}

	if limit <= 0 || count <= int64(limit) {
		return true
	}

	// A counter whose EXPIRE was lost would never reset
	if ttl, err := kw.client.TTL(ctx, key).Result(); err == nil && ttl == noExpiry {
		kw.setExpiry(ctx, id, key)
	}
	return false
}

// RetryAfterSeconds returns the remaining TTL of id's window, 0 if none.
// A window missing its expiry gets one and reports the full window length.
func (kw *KeyDBWindow) RetryAfterSeconds(ctx context.Context, id string) int {
	key := kw.prefix + id
	ttl, err := kw.client.TTL(ctx, key).Result()
	if err != nil {
		return 0
	}
	if ttl == noExpiry {
		kw.setExpiry(ctx, id, key)
		ttl = kw.length
	}
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}

func (kw *KeyDBWindow) setExpiry(ctx context.Context, id, key string) {
	if err := kw.client.Expire(ctx, key, kw.length).Err(); err != nil {
		kw.logger.Warn("Failed to set rate limit window expiry", zap.String("id", id), zap.Error(err))
	}
}

// Limit returns the per-window limit currently in force
func (kw *KeyDBWindow) Limit() int {
	return kw.limit()
}

// Prune is a no-op: KeyDB expires windows on its own
func (kw *KeyDBWindow) Prune() {}
