package durable

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps records in a shared Postgres table
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	s := &PostgresStore{pool: pool, logger: logger}

	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.pool == nil {
		return fmt.Errorf("postgres not initialized")
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS image_cache_records (
		cache_key TEXT PRIMARY KEY,
		primary_url TEXT NOT NULL,
		alternate_urls JSONB NOT NULL DEFAULT '[]'::jsonb,
		provider TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*models.CacheRecord, bool) {
	defer metrics.TimeCacheOperation("get", "durable")()

	record, err := s.get(ctx, key)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("Durable cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("durable", "get")
		}
		return nil, false
	}
	return record, true
}

func (s *PostgresStore) get(ctx context.Context, key string) (*models.CacheRecord, error) {
	var (
		record     models.CacheRecord
		alternates []byte
		provider   string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT cache_key, primary_url, alternate_urls, provider, created_at
		FROM image_cache_records
		WHERE cache_key = $1`, key).
		Scan(&record.CacheKey, &record.PrimaryURL, &alternates, &provider, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	if record.AlternateURLs, err = decodeURLs(alternates); err != nil {
		return nil, err
	}
	record.Provider = models.Provider(provider)
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

// PutIfAbsent inserts record unless the key exists and returns the stored row
func (s *PostgresStore) PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	defer metrics.TimeCacheOperation("put", "durable")()

	alternates, err := encodeURLs(record.AlternateURLs)
	if err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO image_cache_records (cache_key, primary_url, alternate_urls, provider, created_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)
		ON CONFLICT (cache_key) DO NOTHING`,
		record.CacheKey, record.PrimaryURL, alternates, string(record.Provider), record.CreatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	stored, err := s.get(ctx, record.CacheKey)
	if err != nil {
		return nil, fmt.Errorf("read back record: %w", err)
	}
	return stored, nil
}
