package osenc

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/beetlebugorg/osenc/internal/log"
)

// ChartExtensions lists the file extensions BuildIndexFromDir treats as
// OSENC cells. Matching ignores case.
var ChartExtensions = []string{".S57", ".SENC"}

// ChartIndex provides fast spatial queries over a collection of charts.
//
// The index stores the outline of each chart (coverage, scale, edition)
// in an R-tree, so finding the charts for a region never decodes features.
//
// Example:
//
//	idx, err := osenc.BuildIndexFromDir("/charts/SENC", parser, osenc.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stockholm := osenc.Bounds{
//	    MinLon: 17.8, MaxLon: 18.3,
//	    MinLat: 59.2, MaxLat: 59.5,
//	}
//	charts := idx.Query(stockholm, osenc.QueryOptions{})
type ChartIndex struct {
	charts []ChartEntry
	rtree  *rtreego.Rtree
}

// ChartEntry contains indexed metadata for a single chart.
type ChartEntry struct {
	Path         string    // Chart file path or zip:// URL
	Name         string    // Cell name
	GeoBounds    Bounds    // Geographic coverage
	Scale        int       // Native scale denominator (e.g., 50000 for 1:50000)
	Edition      int       // Edition number
	UpdateNumber int       // Update number
	UsageBand    UsageBand // Usage band from the cell name
	Published    time.Time // Issue date
	Updated      time.Time // Date of the last applied update
}

// Bounds implements rtreego.Spatial.
func (e ChartEntry) Bounds() rtreego.Rect {
	return geoRect(e.GeoBounds)
}

func geoRect(b Bounds) rtreego.Rect {
	lengths := []float64{
		max(b.MaxLon-b.MinLon, rectEpsilon),
		max(b.MaxLat-b.MinLat, rectEpsilon),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, lengths)
	return rect
}

// LoadEntry reads the outline of one chart.
func LoadEntry(path string, p Parser) (ChartEntry, error) {
	h, err := p.ReadHeader(path)
	if err != nil {
		return ChartEntry{}, err
	}
	o, err := h.Outline()
	if err != nil {
		return ChartEntry{}, err
	}
	return ChartEntry{
		Path:         path,
		Name:         h.CellName,
		GeoBounds:    OutlineBounds(o),
		Scale:        int(o.Scale),
		Edition:      int(h.Edition),
		UpdateNumber: int(h.UpdateNumber),
		UsageBand:    UsageBandFromCellName(h.CellName),
		Published:    o.Published,
		Updated:      o.Updated,
	}, nil
}

// QueryOptions controls spatial query behavior.
type QueryOptions struct {
	// MinScale filters charts by minimum scale (larger scale, smaller
	// denominator). Only charts at this scale or larger are returned.
	// Example: MinScale=20000 includes 1:20000 and 1:10000, excludes 1:50000.
	MinScale int

	// MaxScale filters charts by maximum scale (smaller scale, larger
	// denominator). Only charts at this scale or smaller are returned.
	MaxScale int

	// UsageBands filters by usage band.
	// If non-empty, only charts matching these bands are returned.
	UsageBands []UsageBand
}

func (q QueryOptions) accepts(e ChartEntry) bool {
	if q.MinScale > 0 && e.Scale > q.MinScale {
		return false
	}
	if q.MaxScale > 0 && e.Scale < q.MaxScale {
		return false
	}
	if len(q.UsageBands) > 0 && !slices.Contains(q.UsageBands, e.UsageBand) {
		return false
	}
	return true
}

// BuildIndexFromDir builds a chart index by scanning a directory tree for
// files with one of ChartExtensions. Outlines are read with
// LoadEntriesParallel; files that fail are logged and skipped when
// opts.SkipErrors is set.
func BuildIndexFromDir(root string, p Parser, opts LoadOptions) (*ChartIndex, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isChartFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no charts found in %s", root)
	}

	entries, errs := LoadEntriesParallel(paths, p, opts)
	if len(entries) == 0 {
		if len(errs) > 0 {
			return nil, fmt.Errorf("no charts could be loaded (%d errors): %w", len(errs), errs[0])
		}
		return nil, fmt.Errorf("no charts could be loaded from %s", root)
	}

	log.Info("osenc.index: built index",
		zap.String("root", root),
		zap.Int("charts", len(entries)),
		zap.Int("errors", len(errs)))
	return BuildIndex(entries), nil
}

func isChartFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range ChartExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// BuildIndex creates an index from already loaded entries.
func BuildIndex(entries []ChartEntry) *ChartIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	charts := make([]ChartEntry, len(entries))
	copy(charts, entries)
	for _, e := range charts {
		rtree.Insert(e)
	}
	return &ChartIndex{charts: charts, rtree: rtree}
}

// Query returns charts intersecting the given bounds, sorted by priority:
//  1. Scale: larger scale (smaller denominator) first
//  2. Edition: higher edition first
//  3. Update: higher update number first
//
// QueryOptions can filter by scale range and usage bands.
func (idx *ChartIndex) Query(bounds Bounds, opts QueryOptions) []ChartEntry {
	var result []ChartEntry
	for _, spatial := range idx.rtree.SearchIntersect(geoRect(bounds)) {
		entry := spatial.(ChartEntry)
		if opts.accepts(entry) {
			result = append(result, entry)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Scale != result[j].Scale {
			return result[i].Scale < result[j].Scale
		}
		if result[i].Edition != result[j].Edition {
			return result[i].Edition > result[j].Edition
		}
		if result[i].UpdateNumber != result[j].UpdateNumber {
			return result[i].UpdateNumber > result[j].UpdateNumber
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Lookup returns the entry of the named cell.
func (idx *ChartIndex) Lookup(name string) (ChartEntry, bool) {
	for _, e := range idx.charts {
		if e.Name == name {
			return e, true
		}
	}
	return ChartEntry{}, false
}

// Count returns the total number of charts in the index.
func (idx *ChartIndex) Count() int {
	return len(idx.charts)
}

// Bounds returns the union of all chart bounds in the index.
func (idx *ChartIndex) Bounds() Bounds {
	if len(idx.charts) == 0 {
		return Bounds{}
	}
	bounds := idx.charts[0].GeoBounds
	for _, e := range idx.charts[1:] {
		bounds = bounds.Union(e.GeoBounds)
	}
	return bounds
}

// All returns all chart entries in the index.
func (idx *ChartIndex) All() []ChartEntry {
	return idx.charts
}
