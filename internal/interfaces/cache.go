package interfaces

import (
	"context"

	"go-image-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache defines the contract for CacheRecord layers.
// Records are immutable: once a key holds a record, PutIfAbsent must return
// that stored record instead of overwriting it.
type Cache interface {
	Get(ctx context.Context, key string) (*models.CacheRecord, bool) // returns record and found flag
	PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error)
}

// LevelAwareCache extends Cache with the layer that served a lookup
type LevelAwareCache interface {
	Cache
	GetWithLevel(ctx context.Context, key string) models.CacheResult
}
