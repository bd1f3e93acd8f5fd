package search

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// indexTTL is how long a built index may be reused before it is dropped.
const indexTTL = 5 * time.Minute

// timeNow is indirected for tests.
var timeNow = time.Now

type cacheEntry struct {
	index   any
	builtAt time.Time
}

// indexCache memoizes built indexes across searches. The key is the record
// count plus the serialized configuration, NOT the record contents: two
// equal-length collections searched with the same configuration share an
// entry. That aliasing is a documented tradeoff — callers pass logically
// distinct collections of distinct sizes, and rebuilding per call would cost
// far more than the occasional stale hit. The mutex guards the whole
// sweep-then-lookup-then-insert sequence.
var indexCache = struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}{entries: make(map[string]cacheEntry)}

// BuildCached returns a cached index for the (collection size, config) key,
// building and storing one when absent. Every access first sweeps expired
// entries; there is no background eviction.
func BuildCached[T any](items []T, cfg Config[T]) *Index[T] {
	key := cacheKey(len(items), cfg)
	now := timeNow()

	indexCache.mu.Lock()
	defer indexCache.mu.Unlock()

	for k, entry := range indexCache.entries {
		if now.Sub(entry.builtAt) >= indexTTL {
			delete(indexCache.entries, k)
		}
	}

	if entry, ok := indexCache.entries[key]; ok {
		if index, ok := entry.index.(*Index[T]); ok {
			return index
		}
	}

	index := Build(items, cfg)
	indexCache.entries[key] = cacheEntry{index: index, builtAt: now}
	return index
}

// cacheKey serializes everything that affects matching: the concrete item
// type, the collection length, the scalar options, and the key names with
// their weights. Accessor funcs are identified by their key name.
func cacheKey[T any](size int, cfg Config[T]) string {
	var sb strings.Builder
	var zero T
	fmt.Fprintf(&sb, "%T|%d|%.3f|%d|%t|%t|%d",
		zero, size, cfg.Threshold, cfg.MinMatchCharLength,
		cfg.ShouldSort, cfg.IgnoreLocation, cfg.Distance)
	for _, key := range cfg.Keys {
		fmt.Fprintf(&sb, "|%s:%.2f", key.Name, key.Weight)
	}
	return sb.String()
}

// purgeIndexCache empties the cache. Used by tests.
func purgeIndexCache() {
	indexCache.mu.Lock()
	defer indexCache.mu.Unlock()
	indexCache.entries = make(map[string]cacheEntry)
}
