package cache

import (
	"context"
	"sync"
	"time"

	"github.com/matchd-cloud/matchd/internal/match"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	record   *match.Record
	storedAt time.Time
}

// Cache is a content-addressed store of computed records keyed by
// request fingerprint. Concurrent lookups for the same key collapse
// onto a single computation; all callers observe that computation's
// outcome.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	flight  singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// ComputeFunc produces the record for a key on cache miss.
type ComputeFunc func(ctx context.Context) (*match.Record, error)

// GetOrCompute returns the cached record for key, or invokes compute
// exactly once across all concurrent callers sharing the key and
// stores its result. With refresh set the read path is bypassed and a
// fresh computation overwrites any existing entry; concurrent refresh
// calls for the same key still collapse. The second return value
// reports whether the record was served from the cache without
// invoking compute.
func (c *Cache) GetOrCompute(ctx context.Context, key string, refresh bool, compute ComputeFunc) (*match.Record, bool, error) {
	if !refresh {
		if record, ok := c.lookup(key); ok {
			return record, true, nil
		}
	}

	return c.computeShared(ctx, key, refresh, compute)
}

type flightResult struct {
	record *match.Record
	hit    bool
}

// computeShared funnels concurrent callers for one key through a
// single flight. A flight that finds the entry already stored reports
// a hit without invoking compute.
func (c *Cache) computeShared(ctx context.Context, key string, refresh bool, compute ComputeFunc) (*match.Record, bool, error) {
	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		if !refresh {
			// A previous flight may have stored the entry between
			// the caller's lookup and acquiring this flight.
			if record, ok := c.lookup(key); ok {
				return flightResult{record: record, hit: true}, nil
			}
		}

		record, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.store(key, record)

		return flightResult{record: record}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := v.(flightResult)

	return res.record, res.hit, nil
}

// Clear empties all entries and returns how many were removed.
// Computations already in flight are unaffected; their eventual
// write may repopulate the cache.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]entry)

	return n
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache) lookup(key string) (*match.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]

	return e.record, ok
}

func (c *Cache) store(key string, record *match.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{record: record, storedAt: time.Now().UTC()}
}
