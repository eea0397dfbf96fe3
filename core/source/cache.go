package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// snapshot is one cached Load result.
type snapshot struct {
	records []Record
	built   time.Time
	ttl     time.Duration
}

// expired reports whether the snapshot outlived its TTL.
func (s *snapshot) expired() bool {
	if s.ttl == 0 {
		return true
	}
	return time.Since(s.built) > s.ttl
}

// Cache is a TTL snapshot cache with stampede protection. Pull-mode
// sessions can hit the same source from many requests at once; the
// singleflight group collapses those into one Load per source.
//
// The cache is an instance, not a package global, so independent
// consumers (the API server, tests) each own their lifetime.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[string]*snapshot
	sf        singleflight.Group
}

// NewCache creates an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{snapshots: make(map[string]*snapshot)}
}

// Load returns the source's snapshot, reusing a cached copy younger
// than ttl. A ttl of zero bypasses the cache entirely.
func (c *Cache) Load(ctx context.Context, src Source, ttl time.Duration) ([]Record, error) {
	if ttl == 0 {
		return src.Load(ctx)
	}

	key := src.Name()

	// Fast path: fresh snapshot already cached.
	c.mu.RLock()
	snap, exists := c.snapshots[key]
	c.mu.RUnlock()
	if exists && !snap.expired() {
		return snap.records, nil
	}

	// Slow path: load once, however many callers pile up.
	result, err, _ := c.sf.Do(key, func() (any, error) {
		// Double-check after winning the singleflight slot.
		c.mu.RLock()
		snap, exists := c.snapshots[key]
		c.mu.RUnlock()
		if exists && !snap.expired() {
			return snap.records, nil
		}

		records, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.snapshots[key] = &snapshot{records: records, built: time.Now(), ttl: ttl}
		c.mu.Unlock()

		return records, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]Record), nil
}

// Invalidate drops the cached snapshot for the named source, forcing
// the next Load to hit the source.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.snapshots, name)
	c.mu.Unlock()
}
