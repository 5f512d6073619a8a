package durable

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-image-cache/internal/config"
	"go-image-cache/internal/models"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "records.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(url string) *models.CacheRecord {
	return &models.CacheRecord{
		CacheKey:      "0379f88e763ce87888b58db96368389ed05f0af1",
		PrimaryURL:    url,
		AlternateURLs: []string{"https://www.heritage.go.kr/a.jpg"},
		Provider:      models.ProviderSearch,
		CreatedAt:     time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_PutIfAbsent_And_Get(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	record := testRecord("https://cdn.example.com/a.png")

	stored, err := store.PutIfAbsent(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, record, stored)

	got, found := store.Get(ctx, record.CacheKey)
	require.True(t, found)
	assert.Equal(t, record, got)
}

func TestSQLiteStore_PutIfAbsent_FirstWriterWins(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	_, err := store.PutIfAbsent(ctx, testRecord("https://cdn.example.com/first.png"))
	require.NoError(t, err)

	winner, err := store.PutIfAbsent(ctx, testRecord("https://cdn.example.com/second.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/first.png", winner.PrimaryURL)
}

func TestSQLiteStore_PutIfAbsent_Concurrent(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	const writers = 10
	urls := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := store.PutIfAbsent(ctx, testRecord(fmt.Sprintf("https://cdn.example.com/%d.png", i)))
			if assert.NoError(t, err) {
				urls[i] = rec.PrimaryURL
			}
		}(i)
	}
	wg.Wait()

	for _, u := range urls {
		assert.Equal(t, urls[0], u)
	}
}

func TestSQLiteStore_NoAlternates(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	record := testRecord("https://cdn.example.com/a.png")
	record.AlternateURLs = nil

	_, err := store.PutIfAbsent(ctx, record)
	require.NoError(t, err)

	got, found := store.Get(ctx, record.CacheKey)
	require.True(t, found)
	assert.Nil(t, got.AlternateURLs)
}

func TestSQLiteStore_Get_Missing(t *testing.T) {
	store := newSQLiteStore(t)

	got, found := store.Get(context.Background(), "missing")

	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSQLiteStore_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(ctx, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = first.PutIfAbsent(ctx, testRecord("https://cdn.example.com/a.png"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(ctx, path, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer second.Close()

	got, found := second.Get(ctx, testRecord("").CacheKey)
	require.True(t, found)
	assert.Equal(t, "https://cdn.example.com/a.png", got.PrimaryURL)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.DurableConfig{Driver: "none"}, zaptest.NewLogger(t))
	assert.NoError(t, err)
	assert.Nil(t, store)

	store, err = Open(ctx, config.DurableConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "r.db")}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open(ctx, config.DurableConfig{Driver: "postgres"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "DSN is required")

	_, err = Open(ctx, config.DurableConfig{Driver: "mongo"}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
