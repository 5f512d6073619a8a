package durable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps records in an embedded SQLite file for single-node
// deployments
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteStore(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps INSERT-then-SELECT free of SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS image_cache_records (
		cache_key TEXT PRIMARY KEY,
		primary_url TEXT NOT NULL,
		alternate_urls TEXT NOT NULL DEFAULT '[]',
		provider TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*models.CacheRecord, bool) {
	defer metrics.TimeCacheOperation("get", "durable")()

	record, err := s.get(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("Durable cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("durable", "get")
		}
		return nil, false
	}
	return record, true
}

func (s *SQLiteStore) get(ctx context.Context, key string) (*models.CacheRecord, error) {
	var (
		record     models.CacheRecord
		alternates string
		provider   string
		createdAt  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT cache_key, primary_url, alternate_urls, provider, created_at
		FROM image_cache_records
		WHERE cache_key = ?`, key).
		Scan(&record.CacheKey, &record.PrimaryURL, &alternates, &provider, &createdAt)
	if err != nil {
		return nil, err
	}

	if record.AlternateURLs, err = decodeURLs([]byte(alternates)); err != nil {
		return nil, err
	}
	record.Provider = models.Provider(provider)
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &record, nil
}

// PutIfAbsent inserts record unless the key exists and returns the stored row
func (s *SQLiteStore) PutIfAbsent(ctx context.Context, record *models.CacheRecord) (*models.CacheRecord, error) {
	defer metrics.TimeCacheOperation("put", "durable")()

	alternates, err := encodeURLs(record.AlternateURLs)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO image_cache_records (cache_key, primary_url, alternate_urls, provider, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (cache_key) DO NOTHING`,
		record.CacheKey, record.PrimaryURL, alternates, string(record.Provider), record.CreatedAt.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	stored, err := s.get(ctx, record.CacheKey)
	if err != nil {
		return nil, fmt.Errorf("read back record: %w", err)
	}
	return stored, nil
}
