package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCatalogCache is a read-through cache over a CatalogProvider backed
// by Redis. Snapshots are stored as JSON with a TTL; a cache failure is
// logged and degrades to the wrapped provider, never to an error.
type RedisCatalogCache struct {
	inner     invoicing.CatalogProvider
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCatalogCache creates a Redis-backed catalog cache, verifying the
// connection up front.
func NewRedisCatalogCache(cfg RedisConfig, inner invoicing.CatalogProvider, ttl time.Duration, logger *zap.Logger) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCatalogCacheWithClient(client, inner, ttl, logger), nil
}

// NewRedisCatalogCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisCatalogCacheWithClient(client *redis.Client, inner invoicing.CatalogProvider, ttl time.Duration, logger *zap.Logger) *RedisCatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCatalogCache{
		inner:     inner,
		client:    client,
		ttl:       ttl,
		keyPrefix: "catalog:snapshot:",
		logger:    logger,
	}
}

// Snapshot returns the client's catalog, serving from Redis when a fresh
// entry exists and filling the cache otherwise.
func (c *RedisCatalogCache) Snapshot(ctx context.Context, clientID uuid.UUID) ([]invoicing.CatalogItem, error) {
	key := c.keyPrefix + clientID.String()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var items []invoicing.CatalogItem
		if err := json.Unmarshal(payload, &items); err == nil {
			return items, nil
		}
		// corrupt entry; fall through to the provider and overwrite
		c.logger.Warn("discarding unreadable catalog cache entry", zap.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	items, err := c.inner.Snapshot(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// Invalidate drops the cached snapshot for a client.
func (c *RedisCatalogCache) Invalidate(ctx context.Context, clientID uuid.UUID) error {
	return c.client.Del(ctx, c.keyPrefix+clientID.String()).Err()
}

// Close closes the Redis client
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

var _ invoicing.CatalogProvider = (*RedisCatalogCache)(nil)
