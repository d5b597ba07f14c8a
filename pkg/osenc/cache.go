package osenc

import (
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"

	"github.com/beetlebugorg/osenc/internal/log"
)

// ChartCache manages decoded charts with LRU eviction.
//
// The cache keeps charts in memory and evicts the least recently used ones
// when the memory estimate exceeds the limit. Memory estimation is based on
// the size of the shared buffers plus a per-object overhead.
//
// Example:
//
//	cache := osenc.NewChartCache(512 * 1024 * 1024) // 512MB
//
//	chart, err := cache.Get("SE3AQ001", func() (*osenc.Chart, error) {
//	    return parser.Parse("/charts/SE3AQ001.S57")
//	})
type ChartCache struct {
	mu         sync.Mutex
	maxMemory  int64 // Maximum memory in bytes, 0 for unlimited
	usedMemory int64
	charts     *lru.Cache
	hits       int
	misses     int
}

// cacheEntry tracks a cached chart and its size estimate.
type cacheEntry struct {
	chart      *Chart
	memorySize int64
}

// NewChartCache creates a cache with the given memory limit in bytes. Zero
// means unlimited.
func NewChartCache(maxMemoryBytes int64) *ChartCache {
	c := &ChartCache{
		maxMemory: maxMemoryBytes,
		charts:    lru.New(0),
	}
	c.charts.OnEvicted = c.evicted
	return c
}

// evicted keeps the memory estimate in step with the lru. It runs while the
// lru is modified, so c.mu is already held.
func (c *ChartCache) evicted(key lru.Key, value interface{}) {
	entry := value.(*cacheEntry)
	c.usedMemory -= entry.memorySize
	log.Debug("osenc.cache: evicted chart",
		zap.String("cell", key.(string)),
		zap.Int64("bytes", entry.memorySize))
}

// Get returns the cached chart for name, or calls loader on a miss and
// caches the result.
//
// A chart too large for the cache is returned without being cached.
func (c *ChartCache) Get(name string, loader func() (*Chart, error)) (*Chart, error) {
	c.mu.Lock()
	if v, ok := c.charts.Get(name); ok {
		c.hits++
		c.mu.Unlock()
		return v.(*cacheEntry).chart, nil
	}
	c.misses++
	c.mu.Unlock()

	chart, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}

	if err := c.Add(name, chart); err != nil {
		log.Debug("osenc.cache: chart not cached", zap.String("cell", name), zap.Error(err))
	}
	return chart, nil
}

// Add adds a chart to the cache, evicting least recently used charts to
// make room. It fails when the chart alone exceeds the memory limit.
func (c *ChartCache) Add(name string, chart *Chart) error {
	memSize := estimateChartMemory(chart)
	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("chart too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Remove first so the memory estimate drops the old entry.
	c.charts.Remove(name)

	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.charts.Len() > 0 {
			c.charts.RemoveOldest()
		}
	}

	c.charts.Add(name, &cacheEntry{chart: chart, memorySize: memSize})
	c.usedMemory += memSize
	return nil
}

// Remove explicitly removes a chart from the cache.
func (c *ChartCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charts.Remove(name)
}

// Clear removes all charts from the cache.
func (c *ChartCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.charts.Clear()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *ChartCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		ChartCount: c.charts.Len(),
		UsedMemory: c.usedMemory,
		MaxMemory:  c.maxMemory,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	ChartCount int   // Number of charts currently cached
	UsedMemory int64 // Estimated memory usage in bytes
	MaxMemory  int64 // Maximum memory limit in bytes
	Hits       int   // Get calls served from the cache
	Misses     int   // Get calls that ran the loader
}

// HitRate returns the fraction of Get calls served from the cache.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// estimateChartMemory estimates memory usage for a chart:
//   - Base overhead: 1KB per chart
//   - 4 bytes per vertex component and per index
//   - 256 bytes per object plus 64 bytes per attribute
func estimateChartMemory(chart *Chart) int64 {
	if chart == nil {
		return 0
	}
	size := int64(1024)
	size += int64(len(chart.Vertices())) * 4
	size += int64(len(chart.Indices())) * 4
	for _, o := range chart.Objects() {
		size += 256 + int64(len(o.Attributes))*64
	}
	return size
}
