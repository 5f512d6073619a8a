package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"go-image-cache/internal/cache"
	"go-image-cache/internal/cache/durable"
	"go-image-cache/internal/cache/l1"
	"go-image-cache/internal/cache/l2"
	"go-image-cache/internal/cache/multi"
	"go-image-cache/internal/cache/noop"
	"go-image-cache/internal/config"
	"go-image-cache/internal/httpserver"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
	"go-image-cache/internal/prompt"
	"go-image-cache/internal/provider"
	"go-image-cache/internal/ratelimit"
	"go-image-cache/internal/relevance"
	"go-image-cache/internal/resolver"
	"go-image-cache/internal/scheduler"
	"go-image-cache/internal/storage"
	"go-image-cache/internal/tracing"
)

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection, initialization and cleanup.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Record layers
	L1Cache      interfaces.Cache
	L2Cache      interfaces.Cache
	DurableStore durable.Store
	RecordCache  *multi.MultiCache
	KeyBuilder   interfaces.KeyBuilder

	// Resolution pipeline
	Limiter      interfaces.RateLimiter
	LimiterSweep *scheduler.Scheduler
	Gateway      *storage.SupabaseGateway
	Provider     *provider.Selector
	Resolver     *resolver.Service

	HTTPServer *httpserver.Server

	keydbClient     interfaces.KeyDbClient
	shutdownTracing tracing.ShutdownFunc
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Tracing
// 4. Record layers (L1, L2, durable) and the key builder
// 5. Rate limiter
// 6. Storage, providers and the resolver
// 7. HTTP Server
func NewCompositionRoot(ctx context.Context) (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initTracing(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := root.initCacheComponents(ctx); err != nil {
		_ = root.Cleanup()
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initRateLimiter()
	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.LoadConfig(GetConfigPath(), r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

func (r *CompositionRoot) initTracing(ctx context.Context) error {
	shutdown, err := tracing.Setup(ctx, r.Config.Tracing, r.Logger)
	if err != nil {
		return err
	}
	r.shutdownTracing = shutdown
	return nil
}

// initCacheComponents initializes the record layers, shallowest first
func (r *CompositionRoot) initCacheComponents(ctx context.Context) error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}
	r.initL2Cache()

	layers := []multi.Layer{
		{Level: models.CacheLevelL1, Cache: r.L1Cache},
		{Level: models.CacheLevelL2, Cache: r.L2Cache},
	}

	store, err := durable.Open(ctx, r.Config.Durable, r.Logger)
	if err != nil {
		return fmt.Errorf("failed to open durable store: %w", err)
	}
	if store != nil {
		r.DurableStore = store
		layers = append(layers, multi.Layer{Level: models.CacheLevelDurable, Cache: store})
		r.Logger.Info("Durable store initialized", zap.String("driver", r.Config.Durable.Driver))
	}

	if err := requirePersistentLayer(r.L2Cache, r.DurableStore); err != nil {
		return err
	}

	r.RecordCache = multi.NewMultiCache(layers, r.Config.MultiCache.EnablePropagation, r.Logger)
	r.KeyBuilder = cache.NewKeyBuilder()
	return nil
}

// requirePersistentLayer fails when neither KeyDB nor a durable table holds
// records: L1 is a front cache only and loses entries on eviction or restart.
func requirePersistentLayer(l2Cache interfaces.Cache, store durable.Store) error {
	if store != nil {
		return nil
	}
	if _, ok := l2Cache.(*l2.KeyDBCache); ok {
		return nil
	}
	return errors.New("no persistent record layer: configure a durable driver or a reachable KeyDB")
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if r.Config.BigCache.Enabled {
		l1Cache, err := l1.NewBigCache(&r.Config.BigCache, r.Logger)
		if err != nil {
			return err
		}
		r.L1Cache = l1Cache
		r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.BigCache.Size))
	} else {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
	}
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB). A failed connection is not
// fatal: records still reach the durable layer and the limiter stays in memory.
func (r *CompositionRoot) initL2Cache() {
	if !r.Config.KeyDB.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	client, err := l2.NewRedisKeyDbClient(&r.Config.KeyDB, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache",
			zap.String("keydb_url", keydbURL),
			zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return
	}

	r.keydbClient = client
	r.L2Cache = l2.NewKeyDBCache(&r.Config.KeyDB, client, r.Logger)
	r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
}

// initRateLimiter selects the limiter backend. The KeyDB window is shared
// across replicas; the in-memory one needs a periodic sweep.
func (r *CompositionRoot) initRateLimiter() {
	window := r.Config.RateLimit.Window

	if r.Config.RateLimit.Backend == "keydb" && r.keydbClient != nil {
		r.Limiter = ratelimit.NewKeyDBWindow(r.keydbClient, r.Config.KeyDB.KeyPrefix, window, rateLimitPerMinute, r.Logger)
		r.Logger.Info("KeyDB rate limiter initialized", zap.Duration("window", window))
		return
	}

	r.Limiter = ratelimit.NewFixedWindow(window, rateLimitPerMinute)
	r.LimiterSweep = scheduler.New(r.Config.RateLimit.SweepInterval, r.Limiter.Prune)
	r.LimiterSweep.Start()
	r.Logger.Info("In-memory rate limiter initialized",
		zap.Duration("window", window),
		zap.Duration("sweep_interval", r.Config.RateLimit.SweepInterval))
}

// initServices initializes storage, providers and the resolver
func (r *CompositionRoot) initServices() {
	httpClient := &http.Client{Timeout: r.Config.Resolver.AttemptTimeout}

	r.Gateway = storage.NewSupabaseGateway(
		httpClient,
		runtimeSettings,
		r.Config.Resolver.UserAgent,
		r.Config.Resolver.MaxImageBytes,
		r.Logger,
	)

	r.Provider = provider.NewSelector(runtimeSettings,
		provider.NewOpenAIGenerator(runtimeSettings, r.Logger),
		provider.NewGeminiGenerator(runtimeSettings, r.Logger),
		provider.NewSearchProvider(httpClient, runtimeSettings, relevance.NewFilter(), r.Gateway, r.Logger),
	)

	r.Resolver = resolver.NewService(
		r.KeyBuilder,
		r.RecordCache,
		r.Limiter,
		prompt.NewBuilder(),
		r.Provider,
		r.Gateway,
		runtimeSettings,
		resolver.Options{
			RetryDelay:     r.Config.Resolver.RetryDelay,
			AttemptTimeout: r.Config.Resolver.AttemptTimeout,
		},
		r.Logger,
	)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(
		r.Resolver,
		r.Limiter,
		r.Config.Server.ReadTimeout,
		r.Config.Server.WriteTimeout,
		r.Logger,
	)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.LimiterSweep != nil {
		r.LimiterSweep.Stop()
	}

	if l1BigCache, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := l1BigCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	if l2KeyDBCache, ok := r.L2Cache.(*l2.KeyDBCache); ok {
		if err := l2KeyDBCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	if r.DurableStore != nil {
		if err := r.DurableStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close durable store: %w", err))
		}
	}

	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}

	// Sync logger last so the errors above are still logged
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}
