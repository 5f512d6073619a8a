package noop

import (
	"context"
	"testing"
	"time"

	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

func TestNewNoOpCache(t *testing.T) {
	cache := NewNoOpCache()

	// Verify it implements the Cache interface
	var _ interfaces.Cache = cache

	// Verify it returns a NoOpCache instance
	if _, ok := cache.(*NoOpCache); !ok {
		t.Errorf("NewNoOpCache() should return a *NoOpCache instance")
	}
}

func TestNoOpCache_Get(t *testing.T) {
	cache := NewNoOpCache()

	testCases := []string{
		"test-key",
		"",
		"0379f88e763ce87888b58db96368389ed05f0af1",
	}

	for _, key := range testCases {
		t.Run(key, func(t *testing.T) {
			record, found := cache.Get(context.Background(), key)
			if record != nil {
				t.Errorf("Get(%q) record = %v, want nil", key, record)
			}
			if found {
				t.Errorf("Get(%q) found = true, want false", key)
			}
		})
	}
}

func TestNoOpCache_PutIfAbsent(t *testing.T) {
	cache := NewNoOpCache()
	record := &models.CacheRecord{
		CacheKey:   "test-key",
		PrimaryURL: "https://cdn.example.com/a.png",
		Provider:   models.ProviderOpenAI,
		CreatedAt:  time.Now(),
	}

	winner, err := cache.PutIfAbsent(context.Background(), record)
	if err != nil {
		t.Fatalf("PutIfAbsent() error = %v", err)
	}
	if winner != record {
		t.Errorf("PutIfAbsent() should return the given record")
	}

	// Nothing is stored
	if _, found := cache.Get(context.Background(), "test-key"); found {
		t.Errorf("Get() after PutIfAbsent() found = true, want false")
	}
}
