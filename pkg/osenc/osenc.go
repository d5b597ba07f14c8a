package osenc

import (
	"time"

	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/beetlebugorg/osenc/internal/log"
	"github.com/beetlebugorg/osenc/internal/parser"
)

// Types shared with the decoder.
type (
	Object             = parser.Object
	Attribute          = parser.Attribute
	AttributeType      = parser.AttributeType
	AttributeCatalog   = parser.AttributeCatalog
	Geometry           = parser.Geometry
	GeometryType       = parser.GeometryType
	MetaGeometry       = parser.MetaGeometry
	PointGeometry      = parser.PointGeometry
	MultiPointGeometry = parser.MultiPointGeometry
	LineGeometry       = parser.LineGeometry
	AreaGeometry       = parser.AreaGeometry
	Element            = parser.Element
	PrimitiveMode      = parser.PrimitiveMode
	Point              = parser.Point
	BBox               = parser.BBox
	LatLon             = parser.LatLon
	Header             = parser.Header
	Outline            = parser.Outline
	Projection         = parser.Projection

	IOError              = parser.IOError
	FormatError          = parser.FormatError
	ErrUnknownNode       = parser.ErrUnknownNode
	ErrDanglingIndex     = parser.ErrDanglingIndex
	ErrInvalidCoordinate = parser.ErrInvalidCoordinate
	ErrPayloadSize       = parser.ErrPayloadSize
)

// ErrGeometryAlreadySet is wrapped by the *FormatError returned when a
// feature carries two geometries.
var ErrGeometryAlreadySet = parser.ErrGeometryAlreadySet

const (
	GeometryTypeMeta       = parser.GeometryTypeMeta
	GeometryTypePoint      = parser.GeometryTypePoint
	GeometryTypeMultiPoint = parser.GeometryTypeMultiPoint
	GeometryTypeLine       = parser.GeometryTypeLine
	GeometryTypeArea       = parser.GeometryTypeArea
)

// EmptyBBox returns a box covering nothing.
func EmptyBBox() BBox { return parser.EmptyBBox() }

// DefaultCatalog returns the built-in S-57 attribute catalogue.
func DefaultCatalog() AttributeCatalog { return parser.DefaultCatalog() }

// ObjectClassToString returns the acronym of an object class code, such as
// "DEPARE" for 42.
func ObjectClassToString(code uint16) string { return parser.ObjectClassToString(code) }

// AttributeCodeToString returns the acronym of an attribute code, such as
// "DRVAL1" for 87.
func AttributeCodeToString(code uint16) string { return parser.AttributeCodeToString(code) }

// Parser reads OSENC chart cells.
//
// Create a parser with NewParser and use Parse or ParseWithOptions to read
// charts. Names are file paths or zip:// URLs of the form
// zip:///path/to/archive.zip!entry/in/archive.
type Parser interface {
	// Parse decodes a whole cell with DefaultParseOptions.
	Parse(name string) (*Chart, error)

	// ParseWithOptions decodes a whole cell.
	ParseWithOptions(name string, opts ParseOptions) (*Chart, error)

	// ReadOutline reads only the header records of a cell.
	ReadOutline(name string) (Outline, error)

	// ReadHeader reads the header records of a cell without requiring an
	// outline.
	ReadHeader(name string) (Header, error)
}

// NewParser creates a new OSENC parser.
//
// Example:
//
//	parser := osenc.NewParser()
//	chart, err := parser.Parse("SE3AQ001.S57")
func NewParser() Parser {
	return &chartParser{}
}

type chartParser struct{}

func (p *chartParser) Parse(name string) (*Chart, error) {
	return p.ParseWithOptions(name, DefaultParseOptions())
}

func (p *chartParser) ParseWithOptions(name string, opts ParseOptions) (chart *Chart, err error) {
	op := decodeMetrics.start("chart")
	defer func() { op.done(err) }()

	enc, err := LookupCharset(opts.Charset)
	if err != nil {
		return nil, err
	}

	rc, err := openChart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoded, err := parser.Decode(rc, parser.DecodeOptions{
		Projection:   opts.Projection,
		Catalog:      opts.Catalog,
		TextEncoding: enc,
		Validate:     opts.ValidateGeometry,
	})
	if err != nil {
		return nil, withPath(err, name)
	}
	return newChart(decoded, opts), nil
}

func (p *chartParser) ReadOutline(name string) (o Outline, err error) {
	h, err := p.ReadHeader(name)
	if err != nil {
		return Outline{}, err
	}
	o, err = h.Outline()
	if err != nil {
		return Outline{}, withPath(err, name)
	}
	return o, nil
}

func (p *chartParser) ReadHeader(name string) (h Header, err error) {
	op := decodeMetrics.start("header")
	defer func() { op.done(err) }()

	rc, err := openChart(name)
	if err != nil {
		return Header{}, err
	}
	defer rc.Close()

	h, err = parser.ReadHeader(rc)
	if err != nil {
		return Header{}, withPath(err, name)
	}
	return h, nil
}

// Chart is a decoded OSENC cell.
//
// The vertex and index buffers are shared by all objects; elements address
// them by offset. Use ObjectsInBounds for viewport queries.
type Chart struct {
	chart        *parser.Chart
	objects      []*Object
	spatialIndex *spatialIndex
	bbox         BBox
	usageBand    UsageBand
}

func newChart(decoded *parser.Chart, opts ParseOptions) *Chart {
	objects := decoded.Objects
	if keep := classFilter(opts.ObjectClassFilter); keep != nil {
		objects = make([]*Object, 0, len(decoded.Objects))
		for _, o := range decoded.Objects {
			if keep[o.ClassName()] {
				objects = append(objects, o)
			}
		}
	}

	c := &Chart{
		chart:     decoded,
		objects:   objects,
		bbox:      EmptyBBox(),
		usageBand: UsageBandFromCellName(decoded.Header.CellName),
	}
	c.spatialIndex = newSpatialIndex(objects)
	for _, o := range objects {
		if !o.BBox.IsEmpty() {
			c.bbox = unionBBox(c.bbox, o.BBox)
		}
	}

	log.Debug("osenc: chart ready",
		zap.String("cell", c.CellName()),
		zap.Int("objects", len(objects)),
		zap.Stringer("usage_band", c.usageBand))
	return c
}

// Objects returns all objects in the chart, in stream order.
func (c *Chart) Objects() []*Object { return c.objects }

// ObjectCount returns the number of objects in the chart.
func (c *Chart) ObjectCount() int { return len(c.objects) }

// Vertices returns the shared vertex buffer of packed x/y pairs.
func (c *Chart) Vertices() []float32 { return c.chart.Vertices }

// VertexCount returns the number of vertices.
func (c *Chart) VertexCount() int { return c.chart.VertexCount() }

// Vertex returns vertex i.
func (c *Chart) Vertex(i uint32) Point { return c.chart.Vertex(i) }

// Indices returns the shared index buffer of the line elements.
func (c *Chart) Indices() []uint32 { return c.chart.Indices }

// BBox returns the planar box covering every object with a geometry.
func (c *Chart) BBox() BBox { return c.bbox }

// Header returns the cell metadata records.
func (c *Chart) Header() Header { return c.chart.Header }

// CellName returns the cell identifier, e.g. "SE3AQ001".
func (c *Chart) CellName() string { return c.chart.Header.CellName }

// Edition returns the cell edition number.
func (c *Chart) Edition() int { return int(c.chart.Header.Edition) }

// UpdateNumber returns the number of the last applied update.
func (c *Chart) UpdateNumber() int { return int(c.chart.Header.UpdateNumber) }

// PublishDate returns the issue date of the cell.
func (c *Chart) PublishDate() time.Time { return c.chart.Header.Published }

// UpdateDate returns the date of the last applied update.
func (c *Chart) UpdateDate() time.Time { return c.chart.Header.Updated }

// CreationDate returns the free-text date the SENC file was written.
func (c *Chart) CreationDate() string { return c.chart.Header.Created }

// Scale returns the native scale denominator.
func (c *Chart) Scale() int { return int(c.chart.Header.Scale) }

// Version returns the OSENC format version of the file.
func (c *Chart) Version() int { return int(c.chart.Header.Version) }

// UsageBand returns the usage band encoded in the cell name.
func (c *Chart) UsageBand() UsageBand { return c.usageBand }

// Coverage returns the geographic extent of the cell. ok is false when the
// file carried no extent record.
func (c *Chart) Coverage() (b Bounds, ok bool) {
	e := c.chart.Header.Extent
	if e == nil {
		return Bounds{}, false
	}
	return OutlineBounds(Outline{SW: e.SW, SE: e.SE, NE: e.NE, NW: e.NW}), true
}

// CountByGeometry returns the number of objects per geometry type.
func (c *Chart) CountByGeometry() map[GeometryType]int {
	counts := make(map[GeometryType]int)
	for _, o := range c.objects {
		if o.Geometry != nil {
			counts[o.Geometry.Type()]++
		}
	}
	return counts
}

// ObjectsInBounds returns the objects whose box intersects box, in
// planar units. Objects without a geometry are never returned.
//
// Example:
//
//	viewport := osenc.BBoxOf(osenc.Bounds{
//	    MinLon: 17.5, MaxLon: 17.7,
//	    MinLat: 59.2, MaxLat: 59.3,
//	}, proj)
//	for _, o := range chart.ObjectsInBounds(viewport) {
//	    render(o)
//	}
func (c *Chart) ObjectsInBounds(box BBox) []*Object {
	if box.IsEmpty() {
		return nil
	}
	if c.spatialIndex == nil || c.spatialIndex.rtree == nil {
		return c.objectsInBoundsLinear(box)
	}

	spatials := c.spatialIndex.rtree.SearchIntersect(rectOf(box))
	result := make([]*Object, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(*indexedObject).object)
	}
	return result
}

// objectsInBoundsLinear performs linear search when no spatial index exists.
func (c *Chart) objectsInBoundsLinear(box BBox) []*Object {
	var result []*Object
	for _, o := range c.objects {
		if o.BBox.Intersects(box) {
			result = append(result, o)
		}
	}
	return result
}

func unionBBox(a, b BBox) BBox {
	return BBox{
		Min: Point{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y)},
		Max: Point{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y)},
	}
}

// spatialIndex provides O(log n) object queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedObject wraps an object for R-tree storage.
type indexedObject struct {
	object *Object
}

// Bounds implements rtreego.Spatial.
func (o *indexedObject) Bounds() rtreego.Rect {
	return rectOf(o.object.BBox)
}

func newSpatialIndex(objects []*Object) *spatialIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, o := range objects {
		if o.BBox.IsEmpty() {
			continue
		}
		rtree.Insert(&indexedObject{object: o})
	}
	return &spatialIndex{rtree: rtree}
}

// rectEpsilon is the smallest side of an R-tree rectangle; the tree
// rejects zero-length sides.
const rectEpsilon = 1e-9

func rectOf(b BBox) rtreego.Rect {
	lengths := []float64{
		max(b.Max.X-b.Min.X, rectEpsilon),
		max(b.Max.Y-b.Min.Y, rectEpsilon),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min.X, b.Min.Y}, lengths)
	return rect
}
