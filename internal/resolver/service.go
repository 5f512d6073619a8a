// Package resolver turns an image request into a URL: cache lookup, rate
// limiting, prompt construction, bounded generation attempts, storage and
// the immutable cache record.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/metrics"
	"go-image-cache/internal/models"
	"go-image-cache/internal/prompt"
	"go-image-cache/internal/storage"
)

const anonymousClient = "anonymous"

// Result is the outcome of one resolve call. A URL is always present.
type Result struct {
	CacheKey      string
	PrimaryURL    string
	AlternateURLs []string
	Provider      models.Provider
	Status        models.CacheStatus
	Level         models.CacheLevel
	Placeholder   bool
}

// Options tunes the attempt loop
type Options struct {
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
}

// Service orchestrates request resolution
type Service struct {
	keys     interfaces.KeyBuilder
	cache    interfaces.LevelAwareCache
	limiter  interfaces.RateLimiter
	prompts  interfaces.PromptBuilder
	provider interfaces.ImageProvider
	gateway  interfaces.StorageGateway
	settings func() config.Runtime
	opts     Options
	group    singleflight.Group
	tracer   trace.Tracer
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a resolver. settings is read on every call.
func NewService(
	keys interfaces.KeyBuilder,
	cache interfaces.LevelAwareCache,
	limiter interfaces.RateLimiter,
	prompts interfaces.PromptBuilder,
	provider interfaces.ImageProvider,
	gateway interfaces.StorageGateway,
	settings func() config.Runtime,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		keys:     keys,
		cache:    cache,
		limiter:  limiter,
		prompts:  prompts,
		provider: provider,
		gateway:  gateway,
		settings: settings,
		opts:     opts,
		tracer:   otel.Tracer("go-image-cache/resolver"),
		logger:   logger,
		now:      time.Now,
	}
}

// CacheKey returns the key req resolves to under the current settings
func (s *Service) CacheKey(req models.ImageRequest, rt config.Runtime) string {
	return s.keys.Build(KeyInputFor(req, rt))
}

// KeyInputFor maps a prepared request to its key fields. CACHE_VERSION
// prefixes the style's own prompt version, so bumping it invalidates every
// key while the two styles keep distinct keys.
func KeyInputFor(req models.ImageRequest, rt config.Runtime) interfaces.KeyInput {
	version := prompt.DefaultVersion(req.Style)
	if rt.CacheVersion != "" {
		version = rt.CacheVersion + "-" + version
	}
	return interfaces.KeyInput{
		Era:      req.Era,
		Topic:    req.Topic,
		Keywords: req.Keywords,
		Size:     req.Size,
		Quality:  req.Quality,
		Version:  version,
	}
}

// Resolve returns the image URL for req. Only ValidationError and
// ThrottledError are returned as errors; every other failure ends in a
// placeholder result.
func (s *Service) Resolve(ctx context.Context, clientID string, req models.ImageRequest) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "resolver.Resolve")
	defer span.End()

	req, err := Prepare(req)
	if err != nil {
		metrics.RecordResolve("INVALID", time.Since(start))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rt := s.settings()
	key := s.CacheKey(req, rt)
	span.SetAttributes(
		attribute.String("cache.key", key),
		attribute.String("request.style", string(req.Style)),
	)

	if hit := s.cache.GetWithLevel(ctx, key); hit.Found {
		span.SetAttributes(attribute.String("cache.level", string(hit.Level)))
		metrics.RecordResolve(string(models.CacheStatusHit), time.Since(start))
		return hitResult(key, hit), nil
	}

	if clientID == "" {
		clientID = anonymousClient
	}
	if !s.limiter.Allow(ctx, clientID) {
		retryAfter := s.limiter.RetryAfterSeconds(ctx, clientID)
		s.logger.Info("Resolve throttled",
			zap.String("client", clientID),
			zap.Int("retry_after", retryAfter))
		metrics.RecordThrottled()
		metrics.RecordResolve("THROTTLED", time.Since(start))
		span.SetStatus(codes.Error, "throttled")
		return nil, &apperrors.ThrottledError{RetryAfterSeconds: retryAfter}
	}

	// Waiters share the flight, so one caller going away must not cancel it
	flightCtx := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.resolveMiss(flightCtx, key, req, rt), nil
	})
	shared := v.(*Result)
	result := *shared

	span.SetAttributes(attribute.String("resolve.status", string(result.Status)))
	metrics.RecordResolve(string(result.Status), time.Since(start))
	return &result, nil
}

// resolveMiss runs at most once per key at a time within this process
func (s *Service) resolveMiss(ctx context.Context, key string, req models.ImageRequest, rt config.Runtime) *Result {
	// A flight that finished just before this one started may have stored the record
	if hit := s.cache.GetWithLevel(ctx, key); hit.Found {
		return hitResult(key, hit)
	}

	record, err := s.generate(ctx, key, req, rt)
	if err != nil {
		s.logger.Warn("All attempts failed, serving placeholder",
			zap.String("key", key),
			zap.String("provider", string(s.provider.Name())),
			zap.Error(err))
		return &Result{
			CacheKey:    key,
			PrimaryURL:  rt.PlaceholderURL,
			Status:      models.CacheStatusPlaceholder,
			Level:       models.CacheLevelMiss,
			Placeholder: true,
		}
	}

	winner, err := s.cache.PutIfAbsent(ctx, record)
	if err != nil {
		// The image is stored even though the record is not; serve it anyway
		s.logger.Error("Failed to store cache record", zap.String("key", key), zap.Error(err))
		winner = record
	}

	return &Result{
		CacheKey:      key,
		PrimaryURL:    winner.PrimaryURL,
		AlternateURLs: winner.AlternateURLs,
		Provider:      winner.Provider,
		Status:        models.CacheStatusMiss,
		Level:         models.CacheLevelMiss,
	}
}

// generate runs up to MAX_RETRIES sequential attempts (at least one)
func (s *Service) generate(ctx context.Context, key string, req models.ImageRequest, rt config.Runtime) (*models.CacheRecord, error) {
	job := interfaces.ImageJob{
		Prompt:   s.prompts.Build(req),
		Request:  req,
		Keywords: req.Keywords,
	}

	maxTries := rt.MaxRetries
	if maxTries < 1 {
		maxTries = 1
	}

	attempt := 0
	operation := func() (*models.CacheRecord, error) {
		attempt++
		record, err := s.attempt(ctx, key, job)
		if err != nil {
			s.logger.Warn("Resolve attempt failed",
				zap.String("key", key),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxTries),
				zap.Error(err))
			if !apperrors.IsRetryable(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return record, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(s.opts.RetryDelay)),
		backoff.WithMaxTries(uint(maxTries)),
	)
}

func (s *Service) attempt(ctx context.Context, key string, job interfaces.ImageJob) (*models.CacheRecord, error) {
	if s.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AttemptTimeout)
		defer cancel()
	}

	ctx, span := s.tracer.Start(ctx, "resolver.attempt")
	defer span.End()

	providerName := string(s.provider.Name())
	img, err := s.provider.Generate(ctx, job)
	if err != nil {
		metrics.RecordProviderAttempt(providerName, outcomeOf(err))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	contentType := storage.DetectContentType(img.Data)
	path := s.keys.StoragePath(key, storage.ExtensionFor(contentType))
	url, err := s.gateway.Put(ctx, img.Data, path, contentType)
	if err != nil {
		metrics.RecordProviderAttempt(providerName, "storage_error")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecordProviderAttempt(providerName, "success")
	return &models.CacheRecord{
		CacheKey:      key,
		PrimaryURL:    url,
		AlternateURLs: img.AlternateURLs,
		Provider:      img.Provider,
		CreatedAt:     s.now().UTC(),
	}, nil
}

func hitResult(key string, hit models.CacheResult) *Result {
	return &Result{
		CacheKey:      key,
		PrimaryURL:    hit.Record.PrimaryURL,
		AlternateURLs: hit.Record.AlternateURLs,
		Provider:      hit.Record.Provider,
		Status:        models.CacheStatusHit,
		Level:         hit.Level,
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotRelevant):
		return "not_relevant"
	case errors.As(err, new(*apperrors.FetchError)):
		return "fetch_error"
	default:
		return "provider_error"
	}
}
