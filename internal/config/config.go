package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	BigCache   BigCacheConfig   `yaml:"bigcache"`
	KeyDB      KeyDBConfig      `yaml:"keydb"`
	Durable    DurableConfig    `yaml:"durable"`
	MultiCache MultiCacheConfig `yaml:"multi_cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Resolver   ResolverConfig   `yaml:"resolver"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Address      string        `yaml:"address"`
	SocketPath   string        `yaml:"socket_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// BigCacheConfig configures the in-process L1 record cache
type BigCacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Size       int           `yaml:"size" validate:"gte=0"` // MB
	LifeWindow time.Duration `yaml:"life_window"`
}

// KeyDBConfig configures the shared L2 record cache
type KeyDBConfig struct {
	Enabled    bool             `yaml:"enabled"`
	KeyPrefix  string           `yaml:"key_prefix"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB connection timeouts
type ConnectionConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int           `yaml:"pool_size" validate:"gte=0"`
	MaxIdleTimeout time.Duration `yaml:"max_idle_timeout"`
}

// DurableConfig selects the durable CacheRecord table
type DurableConfig struct {
	Driver string `yaml:"driver" validate:"oneof=none postgres sqlite"`
	DSN    string `yaml:"dsn"`
	Path   string `yaml:"path"`
}

// MultiCacheConfig controls back-filling of shallower layers on deep hits
type MultiCacheConfig struct {
	EnablePropagation bool `yaml:"enable_propagation"`
}

// RateLimitConfig configures the resolution throttle
type RateLimitConfig struct {
	Backend       string        `yaml:"backend" validate:"oneof=memory keydb"`
	Window        time.Duration `yaml:"window" validate:"gt=0"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"gt=0"`
}

// ResolverConfig tunes the attempt loop and remote fetches
type ResolverConfig struct {
	RetryDelay     time.Duration `yaml:"retry_delay" validate:"gte=0"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout" validate:"gt=0"`
	MaxImageBytes  int64         `yaml:"max_image_bytes" validate:"gt=0"`
	UserAgent      string        `yaml:"user_agent" validate:"required"`
}

// TracingConfig configures the OTLP trace exporter
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// DefaultSQLitePath is the durable table used when no driver is configured
const DefaultSQLitePath = "/app/data/image_records.db"

var validate = validator.New()

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	// Apply defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// Validate checks struct constraints and cross-field requirements
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Durable.Driver {
	case "postgres":
		if c.Durable.DSN == "" {
			return fmt.Errorf("durable.dsn is required for the postgres driver")
		}
	case "sqlite":
		if c.Durable.Path == "" {
			return fmt.Errorf("durable.path is required for the sqlite driver")
		}
	case "none":
		if !c.KeyDB.Enabled {
			return fmt.Errorf("durable.driver none requires keydb.enabled: no persistent record layer")
		}
	}

	if c.RateLimit.Backend == "keydb" && !c.KeyDB.Enabled {
		return fmt.Errorf("rate_limit.backend keydb requires keydb.enabled")
	}

	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Address == "" && c.Server.SocketPath == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120 * time.Second
	}

	if c.BigCache.Size == 0 {
		c.BigCache.Size = 64
	}
	if c.BigCache.LifeWindow == 0 {
		c.BigCache.LifeWindow = 24 * time.Hour
	}

	if c.KeyDB.KeyPrefix == "" {
		c.KeyDB.KeyPrefix = "quiz-image:"
	}
	if c.KeyDB.Connection.ConnectTimeout == 0 {
		c.KeyDB.Connection.ConnectTimeout = 2 * time.Second
	}
	if c.KeyDB.Connection.SendTimeout == 0 {
		c.KeyDB.Connection.SendTimeout = 2 * time.Second
	}
	if c.KeyDB.Connection.ReadTimeout == 0 {
		c.KeyDB.Connection.ReadTimeout = 2 * time.Second
	}
	if c.KeyDB.Keepalive.PoolSize == 0 {
		c.KeyDB.Keepalive.PoolSize = 10
	}
	if c.KeyDB.Keepalive.MaxIdleTimeout == 0 {
		c.KeyDB.Keepalive.MaxIdleTimeout = 60 * time.Second
	}

	// The durable table is what makes a generated image permanent; L1 and L2
	// alone forget records on eviction or restart
	if c.Durable.Driver == "" {
		c.Durable.Driver = "sqlite"
	}
	if c.Durable.Driver == "sqlite" && c.Durable.Path == "" {
		c.Durable.Path = DefaultSQLitePath
	}

	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "memory"
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 60 * time.Second
	}
	if c.RateLimit.SweepInterval == 0 {
		c.RateLimit.SweepInterval = c.RateLimit.Window
	}

	if c.Resolver.AttemptTimeout == 0 {
		c.Resolver.AttemptTimeout = 90 * time.Second
	}
	if c.Resolver.RetryDelay == 0 {
		c.Resolver.RetryDelay = 500 * time.Millisecond
	}
	if c.Resolver.MaxImageBytes == 0 {
		c.Resolver.MaxImageBytes = 10 << 20
	}
	if c.Resolver.UserAgent == "" {
		c.Resolver.UserAgent = "go-image-cache/1.0 (+quiz illustration resolver)"
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "go-image-cache"
	}
}
