package cache

import (
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/backoffice/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CatalogCacheFactory creates catalog caches based on configuration
type CatalogCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CatalogCacheFactoryOption is a functional option for configuring the factory
type CatalogCacheFactoryOption func(*CatalogCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CatalogCacheFactoryOption {
	return func(f *CatalogCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCatalogCacheFactory creates a new factory
func NewCatalogCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...CatalogCacheFactoryOption) *CatalogCacheFactory {
	f := &CatalogCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed catalog cache over the provider
func (f *CatalogCacheFactory) CreateRedisCache(inner invoicing.CatalogProvider) (invoicing.CatalogProvider, error) {
	cache, err := NewRedisCatalogCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, inner, f.ttl, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis catalog cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates an in-memory catalog cache over the provider
func (f *CatalogCacheFactory) CreateInMemoryCache(inner invoicing.CatalogProvider) invoicing.CatalogProvider {
	return NewInMemoryCatalogCache(inner, f.ttl)
}

// Create wraps the provider with a Redis cache when Redis is reachable and
// falls back to an in-memory cache otherwise, unless fallback is disabled.
// A zero TTL disables caching and returns the provider unwrapped.
func (f *CatalogCacheFactory) Create(inner invoicing.CatalogProvider) (invoicing.CatalogProvider, error) {
	if f.ttl <= 0 {
		f.logger.Info("catalog caching disabled")
		return inner, nil
	}

	cache, err := f.CreateRedisCache(inner)
	if err == nil {
		f.logger.Info("using Redis catalog cache", zap.Duration("ttl", f.ttl))
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for catalog cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory catalog cache. "+
		"Cached snapshots will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(inner), nil
}
