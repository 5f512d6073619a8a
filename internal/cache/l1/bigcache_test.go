package l1

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-image-cache/internal/config"
	"go-image-cache/internal/models"
)

func newTestCache(t *testing.T) *BigCache {
	t.Helper()
	cache, err := NewBigCache(&config.BigCacheConfig{Enabled: true, Size: 8, LifeWindow: time.Hour}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func testRecord(key, url string) *models.CacheRecord {
	return &models.CacheRecord{
		CacheKey:      key,
		PrimaryURL:    url,
		AlternateURLs: []string{"https://example.com/alt.png"},
		Provider:      models.ProviderOpenAI,
		CreatedAt:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewBigCache(t *testing.T) {
	logger := zap.NewNop()

	cache, err := NewBigCache(&config.BigCacheConfig{Size: 8, LifeWindow: time.Hour}, logger)

	require.NoError(t, err)
	assert.NotNil(t, cache.cache)
	assert.Equal(t, logger, cache.logger)
	assert.True(t, cache.metricsScheduler.IsRunning())

	require.NoError(t, cache.Close())
	assert.False(t, cache.metricsScheduler.IsRunning())
}

func TestBigCache_PutIfAbsent_And_Get(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	record := testRecord("key-1", "https://cdn.example.com/a.png")

	stored, err := cache.PutIfAbsent(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, record, stored)

	got, found := cache.Get(ctx, "key-1")
	require.True(t, found)
	assert.Equal(t, record.PrimaryURL, got.PrimaryURL)
	assert.Equal(t, record.AlternateURLs, got.AlternateURLs)
	assert.Equal(t, record.Provider, got.Provider)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, 1, cache.Len())
}

func TestBigCache_PutIfAbsent_KeepsFirstRecord(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_, err := cache.PutIfAbsent(ctx, testRecord("key-1", "https://cdn.example.com/first.png"))
	require.NoError(t, err)

	winner, err := cache.PutIfAbsent(ctx, testRecord("key-1", "https://cdn.example.com/second.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/first.png", winner.PrimaryURL)

	got, found := cache.Get(ctx, "key-1")
	require.True(t, found)
	assert.Equal(t, "https://cdn.example.com/first.png", got.PrimaryURL)
}

func TestBigCache_PutIfAbsent_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	const writers = 20
	winners := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := cache.PutIfAbsent(ctx, testRecord("shared", fmt.Sprintf("https://cdn.example.com/%d.png", i)))
			if assert.NoError(t, err) {
				winners[i] = rec.PrimaryURL
			}
		}(i)
	}
	wg.Wait()

	for _, w := range winners {
		assert.Equal(t, winners[0], w)
	}
}

func TestBigCache_Get_NotFound(t *testing.T) {
	cache := newTestCache(t)

	result, found := cache.Get(context.Background(), "non-existent-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestBigCache_Get_CorruptedEntry(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.cache.Set("corrupted", []byte("not json")))

	result, found := cache.Get(context.Background(), "corrupted")

	assert.False(t, found)
	assert.Nil(t, result)
	_, err := cache.cache.Get("corrupted")
	assert.Error(t, err, "corrupted entry should be removed")
}
