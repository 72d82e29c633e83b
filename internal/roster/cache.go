package roster

import (
	"context"
	"sync"
	"time"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Source is anything that can produce the full roster.
type Source interface {
	Entities(ctx context.Context) ([]models.Entity, error)
}

// Cache keeps one roster snapshot and refreshes it from the source when it
// ages past the ttl. A failed refresh serves the stale snapshot rather than
// erroring, as long as one load has ever succeeded.
type Cache struct {
	mu       sync.Mutex
	source   Source
	ttl      time.Duration
	snapshot []models.Entity
	loadedAt time.Time
	loaded   bool
}

// NewCache wraps source with a ttl-bounded snapshot.
func NewCache(source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{source: source, ttl: ttl}
}

// Entities returns the cached snapshot, reloading it first when expired.
func (c *Cache) Entities(ctx context.Context) ([]models.Entity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && time.Since(c.loadedAt) <= c.ttl {
		return c.snapshot, nil
	}

	fresh, err := c.source.Entities(ctx)
	if err != nil {
		if c.loaded {
			return c.snapshot, nil
		}
		return nil, err
	}

	c.snapshot = fresh
	c.loadedAt = time.Now()
	c.loaded = true
	return c.snapshot, nil
}

// Invalidate expires the snapshot so the next read hits the source. The
// snapshot itself is kept so a failing source can still be served stale.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
}
