package osenc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/beetlebugorg/osenc/internal/log"
)

// ChartLoader provides lazy loading of charts with caching.
//
// The loader combines a ChartIndex (for chart discovery) with a ChartCache
// (for keeping frequently used charts in memory). Charts are decoded when a
// viewport query first needs them.
//
// Example:
//
//	idx, _ := osenc.BuildIndexFromDir("/charts/SENC", parser, osenc.DefaultLoadOptions())
//	loader := osenc.NewChartLoader(idx, osenc.DefaultLoaderOptions())
//	charts, err := loader.ChartsForViewport(viewport, 12)
type ChartLoader struct {
	index     *ChartIndex
	cache     *ChartCache
	parser    Parser
	parseOpts ParseOptions
}

// LoaderOptions configures chart loader behavior.
type LoaderOptions struct {
	// CacheSize sets maximum cache memory in bytes.
	// Default: 512MB
	CacheSize int64

	// ParseOptions is used for every chart the loader decodes.
	ParseOptions ParseOptions

	// Parser decodes the charts. Nil uses NewParser().
	Parser Parser
}

// DefaultLoaderOptions returns loader options with defaults.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		CacheSize:    512 * 1024 * 1024,
		ParseOptions: DefaultParseOptions(),
	}
}

// NewChartLoader creates a loader over an existing index.
func NewChartLoader(index *ChartIndex, opts LoaderOptions) *ChartLoader {
	p := opts.Parser
	if p == nil {
		p = NewParser()
	}
	return &ChartLoader{
		index:     index,
		cache:     NewChartCache(opts.CacheSize),
		parser:    p,
		parseOpts: opts.ParseOptions,
	}
}

// ChartsForViewport returns charts covering the viewport at the given web
// mercator zoom level, best chart first.
//
// The zoom level selects a usage band; charts of the adjacent bands are
// included so the viewport is covered where the preferred band has no
// cells. Charts that fail to decode are logged and skipped.
func (l *ChartLoader) ChartsForViewport(viewport Bounds, zoom int) ([]*Chart, error) {
	target := zoomToUsageBand(zoom)
	var bands []UsageBand
	for b := max(target-1, UsageBandOverview); b <= min(target+1, UsageBandBerthing); b++ {
		bands = append(bands, b)
	}

	entries := l.index.Query(viewport, QueryOptions{UsageBands: bands})
	charts := make([]*Chart, 0, len(entries))
	for _, entry := range entries {
		chart, err := l.load(entry)
		if err != nil {
			log.Warn("osenc: skipping chart", zap.String("cell", entry.Name), zap.Error(err))
			continue
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

// Chart loads a specific chart by cell name.
func (l *ChartLoader) Chart(name string) (*Chart, error) {
	entry, ok := l.index.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("chart not found in index: %s", name)
	}
	return l.load(entry)
}

func (l *ChartLoader) load(entry ChartEntry) (*Chart, error) {
	return l.cache.Get(entry.Name, func() (*Chart, error) {
		return l.parser.ParseWithOptions(entry.Path, l.parseOpts)
	})
}

// zoomToUsageBand converts a web mercator zoom level to a usage band.
func zoomToUsageBand(zoom int) UsageBand {
	switch {
	case zoom <= 4:
		return UsageBandOverview
	case zoom <= 8:
		return UsageBandGeneral
	case zoom <= 11:
		return UsageBandCoastal
	case zoom <= 13:
		return UsageBandApproach
	case zoom <= 15:
		return UsageBandHarbour
	default:
		return UsageBandBerthing
	}
}

// Index returns the underlying spatial index.
func (l *ChartLoader) Index() *ChartIndex { return l.index }

// Cache returns the underlying chart cache.
func (l *ChartLoader) Cache() *ChartCache { return l.cache }

// Stats returns loader statistics.
func (l *ChartLoader) Stats() LoaderStats {
	cacheStats := l.cache.Stats()
	return LoaderStats{
		IndexedCharts: l.index.Count(),
		CachedCharts:  cacheStats.ChartCount,
		CacheHits:     cacheStats.Hits,
		CacheMisses:   cacheStats.Misses,
		CacheMemory:   cacheStats.UsedMemory,
		MaxMemory:     cacheStats.MaxMemory,
	}
}

// LoaderStats holds loader performance metrics.
type LoaderStats struct {
	IndexedCharts int   // Total charts in index
	CachedCharts  int   // Charts currently in cache
	CacheHits     int   // Number of cache hits
	CacheMisses   int   // Number of cache misses
	CacheMemory   int64 // Current cache memory usage
	MaxMemory     int64 // Maximum cache memory limit
}
