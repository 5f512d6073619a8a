package l2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
)

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the shared L2 record cache on Redis/KeyDB.
// Records are written with SETNX and no expiration, so the first writer of a
// key wins across every process sharing the instance.
type KeyDBCache struct {
	client       interfaces.KeyDbClient
	prefix       string
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(keydbCfg *config.KeyDBConfig, client interfaces.KeyDbClient, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client:       client,
		prefix:       keydbCfg.KeyPrefix,
		readTimeout:  keydbCfg.Connection.ReadTimeout,
		writeTimeout: keydbCfg.Connection.SendTimeout,
		logger:       logger,
	}
}

func (kc *KeyDBCache) recordKey(key string) string {
	return kc.prefix + "record:" + key
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Get retrieves a record from KeyDB
func (kc *KeyDBCache) Get(ctx context.Context, key string) (*models.CacheRecord, bool) {
	defer metrics.TimeCacheOperation("get", "l2")()

	ctx, cancel := withTimeout(ctx, kc.readTimeout)
	defer cancel()

	data, err := kc.client.Get(ctx, kc.recordKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l2", "get")
		}
		return nil, false
	}

	var record models.CacheRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		kc.logger.Error("Failed to unmarshal L2 cache record", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		return nil, false
	}

	return &record, true
}

// PutIfAbsent writes record with SETNX. When another writer got there first
// the stored record is read back and returned instead.
func (kc *KeyDBCache) PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	defer metrics.TimeCacheOperation("put", "l2")()

	data, err := json.Marshal(record)
	if err != nil {
		metrics.RecordCacheError("l2", "encode")
		return nil, fmt.Errorf("failed to marshal L2 cache record: %w", err)
	}

	writeCtx, cancel := withTimeout(ctx, kc.writeTimeout)
	defer cancel()

	stored, err := kc.client.SetNX(writeCtx, kc.recordKey(record.CacheKey), data, 0).Result()
	if err != nil {
		metrics.RecordCacheError("l2", "set")
		return nil, fmt.Errorf("failed to set L2 cache record: %w", err)
	}
	if stored {
		return record, nil
	}

	existing, found := kc.Get(ctx, record.CacheKey)
	if !found {
		return nil, fmt.Errorf("L2 cache record %s exists but could not be read", record.CacheKey)
	}
	return existing, nil
}

// Close closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	return kc.client.Close()
}
