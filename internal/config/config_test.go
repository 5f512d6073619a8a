package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "image_cache_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

func TestLoadConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validConfig := `
server:
  address: ":9090"
bigcache:
  enabled: true
  size: 200
  life_window: 12h
keydb:
  enabled: true
  key_prefix: "img:"
  connection:
    connect_timeout: 3s
    send_timeout: 1s
    read_timeout: 1500ms
  keepalive:
    pool_size: 20
    max_idle_timeout: 20s
durable:
  driver: sqlite
  path: /var/lib/image-cache/records.db
multi_cache:
  enable_propagation: true
rate_limit:
  backend: keydb
  window: 60s
resolver:
  retry_delay: 250ms
`

	config, err := LoadConfig(createTestConfigFile(t, validConfig), logger)
	require.NoError(t, err)

	assert.Equal(t, ":9090", config.Server.Address)
	assert.True(t, config.BigCache.Enabled)
	assert.Equal(t, 200, config.BigCache.Size)
	assert.Equal(t, 12*time.Hour, config.BigCache.LifeWindow)

	assert.True(t, config.KeyDB.Enabled)
	assert.Equal(t, "img:", config.KeyDB.KeyPrefix)
	assert.Equal(t, 3*time.Second, config.KeyDB.Connection.ConnectTimeout)
	assert.Equal(t, 1500*time.Millisecond, config.KeyDB.Connection.ReadTimeout)
	assert.Equal(t, 20, config.KeyDB.Keepalive.PoolSize)

	assert.Equal(t, "sqlite", config.Durable.Driver)
	assert.True(t, config.MultiCache.EnablePropagation)
	assert.Equal(t, "keydb", config.RateLimit.Backend)
	assert.Equal(t, 60*time.Second, config.RateLimit.SweepInterval)
	assert.Equal(t, 250*time.Millisecond, config.Resolver.RetryDelay)
}

func TestLoadConfig_Defaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	config, err := LoadConfig(createTestConfigFile(t, "bigcache:\n  enabled: false\n"), logger)
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.Server.Address)
	assert.Equal(t, 64, config.BigCache.Size)
	assert.Equal(t, "quiz-image:", config.KeyDB.KeyPrefix)
	assert.Equal(t, 2*time.Second, config.KeyDB.Connection.ConnectTimeout)
	assert.Equal(t, "sqlite", config.Durable.Driver)
	assert.Equal(t, DefaultSQLitePath, config.Durable.Path)
	assert.Equal(t, "memory", config.RateLimit.Backend)
	assert.Equal(t, 60*time.Second, config.RateLimit.Window)
	assert.Equal(t, int64(10<<20), config.Resolver.MaxImageBytes)
	assert.NotEmpty(t, config.Resolver.UserAgent)
	assert.Equal(t, "go-image-cache", config.Tracing.ServiceName)
}

func TestLoadConfig_SocketPathKeepsAddressEmpty(t *testing.T) {
	config, err := LoadConfig(createTestConfigFile(t, "server:\n  socket_path: /tmp/img.sock\n"), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Empty(t, config.Server.Address)
	assert.Equal(t, "/tmp/img.sock", config.Server.SocketPath)
}

func TestLoadConfig_Errors(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"invalid yaml", "bigcache: [", "failed to decode YAML config"},
		{"unknown durable driver", "durable:\n  driver: mongo\n", "invalid config"},
		{"postgres without dsn", "durable:\n  driver: postgres\n", "durable.dsn is required"},
		{"no persistent layer", "durable:\n  driver: none\n", "no persistent record layer"},
		{"keydb limiter without keydb", "rate_limit:\n  backend: keydb\n", "requires keydb.enabled"},
		{"unknown limiter backend", "rate_limit:\n  backend: etcd\n", "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(createTestConfigFile(t, tt.content), logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config file")
}

func TestDefault(t *testing.T) {
	config := Default()
	assert.NoError(t, config.Validate())
	assert.False(t, config.BigCache.Enabled)
	assert.False(t, config.KeyDB.Enabled)
	assert.Equal(t, "sqlite", config.Durable.Driver)
	assert.Equal(t, DefaultSQLitePath, config.Durable.Path)
}

func TestLoadConfig_PersistentLayer(t *testing.T) {
	tests := []struct {
		name    string
		content string
		driver  string
		path    string
	}{
		{"sqlite path defaulted", "durable:\n  driver: sqlite\n", "sqlite", DefaultSQLitePath},
		{"keydb without durable table", "keydb:\n  enabled: true\ndurable:\n  driver: none\n", "none", ""},
		{"explicit sqlite path", "durable:\n  driver: sqlite\n  path: /data/r.db\n", "sqlite", "/data/r.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(createTestConfigFile(t, tt.content), zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, tt.driver, config.Durable.Driver)
			assert.Equal(t, tt.path, config.Durable.Path)
		})
	}
}
