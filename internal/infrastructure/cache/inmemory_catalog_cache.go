package cache

import (
	"context"
	"sync"
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/google/uuid"
)

// InMemoryCatalogCache is a read-through catalog cache held in process
// memory. Suitable for single-instance deployments and testing; entries
// are not shared across instances.
type InMemoryCatalogCache struct {
	inner   invoicing.CatalogProvider
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[uuid.UUID]catalogEntry
	now     func() time.Time
}

type catalogEntry struct {
	items     []invoicing.CatalogItem
	expiresAt time.Time
}

// NewInMemoryCatalogCache creates an in-memory catalog cache.
func NewInMemoryCatalogCache(inner invoicing.CatalogProvider, ttl time.Duration) *InMemoryCatalogCache {
	return &InMemoryCatalogCache{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[uuid.UUID]catalogEntry),
		now:     time.Now,
	}
}

// Snapshot returns the client's catalog, serving a fresh cached copy when
// one exists.
func (c *InMemoryCatalogCache) Snapshot(ctx context.Context, clientID uuid.UUID) ([]invoicing.CatalogItem, error) {
	c.mu.RLock()
	entry, ok := c.entries[clientID]
	c.mu.RUnlock()

	if ok && c.now().Before(entry.expiresAt) {
		// copy so callers cannot mutate the cached slice
		items := make([]invoicing.CatalogItem, len(entry.items))
		copy(items, entry.items)
		return items, nil
	}

	items, err := c.inner.Snapshot(ctx, clientID)
	if err != nil {
		return nil, err
	}

	cached := make([]invoicing.CatalogItem, len(items))
	copy(cached, items)

	c.mu.Lock()
	c.entries[clientID] = catalogEntry{items: cached, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return items, nil
}

// Invalidate drops the cached snapshot for a client.
func (c *InMemoryCatalogCache) Invalidate(ctx context.Context, clientID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, clientID)
	c.mu.Unlock()
	return nil
}

var _ invoicing.CatalogProvider = (*InMemoryCatalogCache)(nil)
