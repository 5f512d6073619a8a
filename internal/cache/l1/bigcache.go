package l1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
	"go-image-cache/internal/scheduler"
)

const metricsInterval = 30 * time.Second

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the in-process L1 record cache using BigCache.
// Eviction only drops the local copy; deeper layers keep the record.
type BigCache struct {
	cache            *bigcache.BigCache
	capacityBytes    int64
	mu               sync.Mutex // serializes PutIfAbsent
	logger           *zap.Logger
	metricsScheduler *scheduler.Scheduler
}

// NewBigCache creates a new BigCache instance
func NewBigCache(bigcacheCfg *config.BigCacheConfig, logger *zap.Logger) (*BigCache, error) {
	cfg := bigcache.DefaultConfig(bigcacheCfg.LifeWindow)
	cfg.HardMaxCacheSize = bigcacheCfg.Size // Size in MB
	cfg.Verbose = false
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 64 * 100
	cfg.MaxEntrySize = 1024 // records are small JSON documents

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigcache: %w", err)
	}

	bc := &BigCache{
		cache:         cache,
		capacityBytes: int64(bigcacheCfg.Size) * 1024 * 1024,
		logger:        logger,
	}

	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a record from the cache
func (bc *BigCache) Get(_ context.Context, key string) (*models.CacheRecord, bool) {
	defer metrics.TimeCacheOperation("get", "l1")()

	data, err := bc.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			bc.logger.Warn("L1 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l1", "get")
		}
		return nil, false
	}

	var record models.CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache record", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	return &record, true
}

// PutIfAbsent stores record unless its key is already present, in which case
// the stored record is returned unchanged
func (bc *BigCache) PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	defer metrics.TimeCacheOperation("put", "l1")()

	bc.mu.Lock()
	defer bc.mu.Unlock()

	if existing, ok := bc.Get(ctx, record.CacheKey); ok {
		return existing, nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		metrics.RecordCacheError("l1", "encode")
		return nil, fmt.Errorf("failed to marshal L1 cache record: %w", err)
	}

	if err := bc.cache.Set(record.CacheKey, data); err != nil {
		metrics.RecordCacheError("l1", "set")
		return nil, fmt.Errorf("failed to set L1 cache record: %w", err)
	}

	return record, nil
}

// Len returns the number of records currently held
func (bc *BigCache) Len() int {
	return bc.cache.Len()
}

// Close closes the cache
func (bc *BigCache) Close() error {
	bc.stopMetricsCollection()

	return bc.cache.Close()
}

// startMetricsCollection starts periodic metrics collection
func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = scheduler.New(metricsInterval, bc.updateMetrics)
	bc.metricsScheduler.Start()

	// Initial collection
	bc.updateMetrics()

	bc.logger.Debug("Started L1 cache metrics collection")
}

// stopMetricsCollection stops periodic metrics collection
func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped L1 cache metrics collection")
	}
}

// updateMetrics updates cache metrics
func (bc *BigCache) updateMetrics() {
	metrics.UpdateL1CacheCapacity(bc.capacityBytes, int64(bc.cache.Capacity()))
	metrics.UpdateCacheKeys("l1", int64(bc.cache.Len()))
}
