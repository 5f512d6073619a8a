// Package durable persists CacheRecords in a SQL table. Rows are inserted
// once and never updated or deleted.
package durable

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
)

// Store is a durable record layer that owns a database handle
type Store interface {
	interfaces.Cache
	Close() error
}

// Open returns the store selected by cfg.Driver, or nil for "none"
func Open(ctx context.Context, cfg config.DurableConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN, logger)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown durable driver %q", cfg.Driver)
	}
}

func encodeURLs(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return "", fmt.Errorf("encode alternate urls: %w", err)
	}
	return string(data), nil
}

func decodeURLs(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil, fmt.Errorf("decode alternate urls: %w", err)
	}
	if len(urls) == 0 {
		return nil, nil
	}
	return urls, nil
}
