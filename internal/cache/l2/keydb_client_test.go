package l2

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-image-cache/internal/config"
)

func TestClientOptions(t *testing.T) {
	cfg := &config.KeyDBConfig{
		Connection: config.ConnectionConfig{
			ConnectTimeout: 2 * time.Second,
			SendTimeout:    3 * time.Second,
			ReadTimeout:    4 * time.Second,
		},
		Keepalive: config.KeepaliveConfig{PoolSize: 7, MaxIdleTimeout: time.Minute},
	}

	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
		tls      bool
	}{
		{name: "plain", url: "redis://keydb:6379", addr: "keydb:6379"},
		{name: "default port", url: "redis://keydb", addr: "keydb:6379"},
		{name: "password and db", url: "redis://:s3cret@keydb:6380/2", addr: "keydb:6380", password: "s3cret", db: 2},
		{name: "tls", url: "rediss://keydb:6379", addr: "keydb:6379", tls: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := clientOptions(cfg, tt.url)
			require.NoError(t, err)

			assert.Equal(t, tt.addr, opts.Addr)
			assert.Equal(t, tt.password, opts.Password)
			assert.Equal(t, tt.db, opts.DB)
			assert.Equal(t, tt.tls, opts.TLSConfig != nil)
			assert.Equal(t, 2*time.Second, opts.DialTimeout)
			assert.Equal(t, 3*time.Second, opts.WriteTimeout)
			assert.Equal(t, 4*time.Second, opts.ReadTimeout)
			assert.Equal(t, 7, opts.PoolSize)
			assert.Equal(t, time.Minute, opts.IdleTimeout)
		})
	}
}

func TestClientOptions_InvalidURL(t *testing.T) {
	_, err := clientOptions(&config.KeyDBConfig{}, "http://keydb:6379")
	assert.Error(t, err)
}
