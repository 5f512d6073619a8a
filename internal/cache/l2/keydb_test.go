package l2

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces/mock"
	"go-image-cache/internal/models"
)

func testConfig() *config.KeyDBConfig {
	return &config.KeyDBConfig{
		Enabled:   true,
		KeyPrefix: "quiz-image:",
		Connection: config.ConnectionConfig{
			ReadTimeout: time.Second,
			SendTimeout: time.Second,
		},
	}
}

func testRecord(url string) *models.CacheRecord {
	return &models.CacheRecord{
		CacheKey:   "abc123",
		PrimaryURL: url,
		Provider:   models.ProviderGemini,
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestNewKeyDBCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	logger := zap.NewNop()

	cache := NewKeyDBCache(testConfig(), mockClient, logger)

	assert.Equal(t, mockClient, cache.client)
	assert.Equal(t, "quiz-image:", cache.prefix)
	assert.Equal(t, time.Second, cache.readTimeout)
	assert.Equal(t, logger, cache.logger)
}

func TestKeyDBCache_Get_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())
	record := testRecord("https://cdn.example.com/a.png")

	mockClient.EXPECT().Get(gomock.Any(), "quiz-image:record:abc123").
		Return(redis.NewStringResult(mustJSON(t, record), nil))

	got, found := cache.Get(context.Background(), "abc123")

	require.True(t, found)
	assert.Equal(t, record.PrimaryURL, got.PrimaryURL)
	assert.Equal(t, record.Provider, got.Provider)
}

func TestKeyDBCache_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())

	mockClient.EXPECT().Get(gomock.Any(), gomock.Any()).Return(redis.NewStringResult("", redis.Nil))

	got, found := cache.Get(context.Background(), "abc123")

	assert.False(t, found)
	assert.Nil(t, got)
}

func TestKeyDBCache_Get_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())

	mockClient.EXPECT().Get(gomock.Any(), gomock.Any()).Return(redis.NewStringResult("", errors.New("connection refused")))

	got, found := cache.Get(context.Background(), "abc123")

	assert.False(t, found)
	assert.Nil(t, got)
}

func TestKeyDBCache_Get_CorruptedEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())

	mockClient.EXPECT().Get(gomock.Any(), gomock.Any()).Return(redis.NewStringResult("{not json", nil))

	got, found := cache.Get(context.Background(), "abc123")

	assert.False(t, found)
	assert.Nil(t, got)
}

func TestKeyDBCache_PutIfAbsent_Stored(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())
	record := testRecord("https://cdn.example.com/a.png")

	mockClient.EXPECT().
		SetNX(gomock.Any(), "quiz-image:record:abc123", []byte(mustJSON(t, record)), time.Duration(0)).
		Return(redis.NewBoolResult(true, nil))

	got, err := cache.PutIfAbsent(context.Background(), record)

	require.NoError(t, err)
	assert.Same(t, record, got)
}

func TestKeyDBCache_PutIfAbsent_ReturnsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())
	existing := testRecord("https://cdn.example.com/first.png")

	gomock.InOrder(
		mockClient.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), time.Duration(0)).
			Return(redis.NewBoolResult(false, nil)),
		mockClient.EXPECT().Get(gomock.Any(), "quiz-image:record:abc123").
			Return(redis.NewStringResult(mustJSON(t, existing), nil)),
	)

	got, err := cache.PutIfAbsent(context.Background(), testRecord("https://cdn.example.com/second.png"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/first.png", got.PrimaryURL)
}

func TestKeyDBCache_PutIfAbsent_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())

	mockClient.EXPECT().SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(redis.NewBoolResult(false, errors.New("READONLY")))

	got, err := cache.PutIfAbsent(context.Background(), testRecord("https://cdn.example.com/a.png"))

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestKeyDBCache_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mock.NewMockKeyDbClient(ctrl)
	cache := NewKeyDBCache(testConfig(), mockClient, zap.NewNop())

	mockClient.EXPECT().Close().Return(nil)

	assert.NoError(t, cache.Close())
}
