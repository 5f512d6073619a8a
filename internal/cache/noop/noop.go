package noop

import (
	"context"

	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache implementation for disabled layers
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() interfaces.Cache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(_ context.Context, _ string) (*models.CacheRecord, bool) {
	return nil, false
}

// PutIfAbsent stores nothing and hands the record back as the winner
func (n *NoOpCache) PutIfAbsent(_ context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	return record, nil
}
