package cache

import (
	"sync"
	"time"

	"codemap/internal/domain"
)

const (
	// DefaultMaxEntries bounds the cache size.
	DefaultMaxEntries = 100

	// DefaultTTL is the fixed expiry window for a cached result set,
	// checked lazily on read.
	DefaultTTL = 300 * time.Second
)

// ResultCache is a bounded, mutex-guarded cache of search result sets
// keyed by query string. Every stored result set is a deep copy: a
// cache entry never aliases memory owned by the live index, which can
// mutate independently through incremental updates. All operations
// hold a single mutex for their full duration; correctness over
// throughput.
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxEntries int
	ttl        time.Duration
	hits       uint64
	misses     uint64

	now func() time.Time // swapped in tests
}

type entry struct {
	results     []domain.SearchResult
	timestamp   time.Time
	accessCount uint64
}

// New creates a ResultCache. Non-positive arguments fall back to the
// defaults.
func New(maxEntries int, ttl time.Duration) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		entries:    make(map[string]*entry, maxEntries),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached results for a query. An entry older than the
// TTL is evicted and counted as a miss; a live entry has its access
// count bumped and counts as a hit.
func (c *ResultCache) Get(query string) ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[query]
	if !ok {
		c.misses++
		return nil, false
	}

	if c.now().Sub(e.timestamp) > c.ttl {
		delete(c.entries, query)
		c.misses++
		return nil, false
	}

	e.accessCount++
	c.hits++
	return e.results, true
}

// Put stores a deep copy of the results under the query key. At
// capacity it first evicts the entry with the lowest access count,
// tie-broken by oldest insertion time, so rarely reused queries go
// before recently inserted but popular ones.
func (c *ResultCache) Put(query string, results []domain.SearchResult) {
	copied := cloneResults(results)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[query]; !exists && len(c.entries) >= c.maxEntries {
		c.evict()
	}

	c.entries[query] = &entry{
		results:   copied,
		timestamp: c.now(),
	}
}

// evict removes the least valuable entry. Caller holds the mutex.
func (c *ResultCache) evict() {
	var victim string
	var victimEntry *entry
	for q, e := range c.entries {
		if victimEntry == nil ||
			e.accessCount < victimEntry.accessCount ||
			(e.accessCount == victimEntry.accessCount && e.timestamp.Before(victimEntry.timestamp)) {
			victim = q
			victimEntry = e
		}
	}
	if victimEntry != nil {
		delete(c.entries, victim)
	}
}

// InvalidateAll clears every entry; used after a full rebuild.
func (c *ResultCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry, c.maxEntries)
}

// InvalidateFile removes every cache entry whose stored results
// reference the given path. Must be called whenever that file is
// updated or removed, otherwise cached results go stale.
func (c *ResultCache) InvalidateFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for query, e := range c.entries {
		for _, r := range e.results {
			if r.FilePath == path {
				delete(c.entries, query)
				break
			}
		}
	}
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := domain.CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}
	return stats
}

// cloneResults deep-copies a result set. Slices are reallocated and
// symbols copied by value; strings are immutable in Go, so the copies
// share no mutable state with the live index.
func cloneResults(results []domain.SearchResult) []domain.SearchResult {
	if results == nil {
		return nil
	}
	copied := make([]domain.SearchResult, len(results))
	copy(copied, results)
	return copied
}
