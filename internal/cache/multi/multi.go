package multi

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// Layer is one record store together with the level it reports
type Layer struct {
	Level models.CacheLevel
	Cache interfaces.Cache
}

// MultiCache composes record layers ordered from shallowest (L1) to deepest
// (durable). Lookups walk down; writes walk up, so the deepest layer decides
// which record wins a race.
type MultiCache struct {
	layers            []Layer
	enablePropagation bool
	logger            *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided layers
func NewMultiCache(layers []Layer, enablePropagation bool, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		layers:            layers,
		enablePropagation: enablePropagation,
		logger:            logger,
	}
}

// Get retrieves a record from the first layer that has the key
func (mc *MultiCache) Get(ctx context.Context, key string) (*models.CacheRecord, bool) {
	result := mc.GetWithLevel(ctx, key)
	return result.Record, result.Found
}

// GetWithLevel retrieves a record and reports which layer served it.
// With propagation enabled a hit is copied into every shallower layer.
func (mc *MultiCache) GetWithLevel(ctx context.Context, key string) models.CacheResult {
	if len(mc.layers) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		metrics.RecordCacheMiss()
		return models.CacheResult{Level: models.CacheLevelMiss}
	}

	for i, layer := range mc.layers {
		record, found := layer.Cache.Get(ctx, key)
		if !found {
			continue
		}

		metrics.RecordCacheHit(levelLabel(layer.Level))
		if mc.enablePropagation && i > 0 {
			mc.propagate(ctx, record, i)
		}
		return models.CacheResult{Record: record, Level: layer.Level, Found: true}
	}

	metrics.RecordCacheMiss()
	return models.CacheResult{Level: models.CacheLevelMiss}
}

// propagate back-fills the layers above index hit
func (mc *MultiCache) propagate(ctx context.Context, record *models.CacheRecord, hit int) {
	for i := hit - 1; i >= 0; i-- {
		layer := mc.layers[i]
		if _, err := layer.Cache.PutIfAbsent(ctx, record); err != nil {
			mc.logger.Warn("Failed to back-fill cache layer",
				zap.String("key", record.CacheKey),
				zap.String("level", string(layer.Level)),
				zap.Error(err))
		}
	}
}

// PutIfAbsent stores record in every layer, deepest first. The record that
// the deepest reachable layer holds is passed upward and returned, so every
// layer converges on the same winner. Failing layers are skipped; an error is
// returned only when no layer accepted the write.
func (mc *MultiCache) PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	if len(mc.layers) == 0 {
		mc.logger.Warn("No caches available for put operation", zap.String("key", record.CacheKey))
		return record, nil
	}

	winner := record
	var errs []error
	for i := len(mc.layers) - 1; i >= 0; i-- {
		layer := mc.layers[i]
		stored, err := layer.Cache.PutIfAbsent(ctx, winner)
		if err != nil {
			mc.logger.Warn("Failed to store record in cache layer",
				zap.String("key", record.CacheKey),
				zap.String("level", string(layer.Level)),
				zap.Error(err))
			metrics.RecordCacheError(levelLabel(layer.Level), "put")
			errs = append(errs, err)
			continue
		}
		winner = stored
	}

	if len(errs) == len(mc.layers) {
		return nil, errors.Join(errs...)
	}
	return winner, nil
}

// GetCacheCount returns the number of layers in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.layers)
}

func levelLabel(level models.CacheLevel) string {
	return strings.ToLower(string(level))
}
