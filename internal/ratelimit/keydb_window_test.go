package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-image-cache/internal/interfaces/mock"
)

func TestKeyDBWindow_FirstRequestSetsExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	limiter := NewKeyDBWindow(mockClient, "img:", time.Minute, staticLimit(3), zap.NewNop())

	mockClient.EXPECT().Incr(gomock.Any(), "img:rl:10.0.0.1").Return(redis.NewIntResult(1, nil))
	mockClient.EXPECT().Expire(gomock.Any(), "img:rl:10.0.0.1", time.Minute).Return(redis.NewBoolResult(true, nil))

	assert.True(t, limiter.Allow(context.Background(), "10.0.0.1"))
}

func TestKeyDBWindow_RejectsOverLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	limiter := NewKeyDBWindow(mockClient, "img:", time.Minute, staticLimit(3), zap.NewNop())

	gomock.InOrder(
		mockClient.EXPECT().Incr(gomock.Any(), "img:rl:client").Return(redis.NewIntResult(3, nil)),
		mockClient.EXPECT().Incr(gomock.Any(), "img:rl:client").Return(redis.NewIntResult(4, nil)),
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(30*time.Second, nil)),
	)

	assert.True(t, limiter.Allow(context.Background(), "client"))
	assert.False(t, limiter.Allow(context.Background(), "client"))
}

func TestKeyDBWindow_RestoresLostExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	limiter := NewKeyDBWindow(mockClient, "img:", time.Minute, staticLimit(1), zap.NewNop())

	gomock.InOrder(
		mockClient.EXPECT().Incr(gomock.Any(), "img:rl:client").Return(redis.NewIntResult(1, nil)),
		mockClient.EXPECT().Expire(gomock.Any(), "img:rl:client", time.Minute).
			Return(redis.NewBoolResult(false, errors.New("connection reset"))),
		mockClient.EXPECT().Incr(gomock.Any(), "img:rl:client").Return(redis.NewIntResult(2, nil)),
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(-1, nil)),
		mockClient.EXPECT().Expire(gomock.Any(), "img:rl:client", time.Minute).Return(redis.NewBoolResult(true, nil)),
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(-1, nil)),
		mockClient.EXPECT().Expire(gomock.Any(), "img:rl:client", time.Minute).Return(redis.NewBoolResult(true, nil)),
	)

	assert.True(t, limiter.Allow(context.Background(), "client"))
	assert.False(t, limiter.Allow(context.Background(), "client"))
	assert.Equal(t, 60, limiter.RetryAfterSeconds(context.Background(), "client"))
}

func TestKeyDBWindow_FailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	limiter := NewKeyDBWindow(mockClient, "img:", time.Minute, staticLimit(1), zap.NewNop())

	mockClient.EXPECT().Incr(gomock.Any(), "img:rl:client").Return(redis.NewIntResult(0, errors.New("connection refused")))

	assert.True(t, limiter.Allow(context.Background(), "client"))
}

func TestKeyDBWindow_RetryAfterSeconds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	limiter := NewKeyDBWindow(mockClient, "img:", time.Minute, staticLimit(1), zap.NewNop())

	gomock.InOrder(
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(41500*time.Millisecond, nil)),
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(-2, nil)),
		mockClient.EXPECT().TTL(gomock.Any(), "img:rl:client").Return(redis.NewDurationResult(0, errors.New("timeout"))),
	)

	assert.Equal(t, 42, limiter.RetryAfterSeconds(context.Background(), "client"))
	assert.Equal(t, 0, limiter.RetryAfterSeconds(context.Background(), "client"))
	assert.Equal(t, 0, limiter.RetryAfterSeconds(context.Background(), "client"))
}
