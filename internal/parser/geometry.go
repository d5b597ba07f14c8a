package parser

import (
	"fmt"
	"math"
)

// LatLon is a WGS-84 position in decimal degrees.
type LatLon struct {
	Lon, Lat float64
}

// Point is a position in the planar coordinate space of the vertex buffer.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned box in planar units.
type BBox struct {
	Min, Max Point
}

// EmptyBBox returns a box covering nothing, the start value for min/max
// accumulation.
func EmptyBBox() BBox {
	return BBox{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
}

func (b *BBox) extend(x, y float64) {
	b.Min.X = math.Min(b.Min.X, x)
	b.Min.Y = math.Min(b.Min.Y, y)
	b.Max.X = math.Max(b.Max.X, x)
	b.Max.Y = math.Max(b.Max.Y, y)
}

// IsEmpty reports whether b covers no points at all.
func (b BBox) IsEmpty() bool {
	return !(b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y)
}

// Width returns the extent along x.
func (b BBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the extent along y.
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Centre returns the middle of b, or the origin if b is empty.
func (b BBox) Centre() Point {
	if b.IsEmpty() {
		return Point{}
	}
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Intersects reports whether b and o overlap, edges included.
func (b BBox) Intersects(o BBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// PrimitiveMode is the draw mode of an Element. Values match the OpenGL
// enums stored in the file.
type PrimitiveMode uint8

const (
	Triangles          PrimitiveMode = 0x4
	TriangleStrip      PrimitiveMode = 0x5
	TriangleFan        PrimitiveMode = 0x6
	LineStripAdjacency PrimitiveMode = 0xB
)

func (m PrimitiveMode) String() string {
	switch m {
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case LineStripAdjacency:
		return "LineStripAdjacency"
	default:
		return fmt.Sprintf("PrimitiveMode(%d)", uint8(m))
	}
}

// Element is one draw primitive. For LineStripAdjacency, Offset and Count
// address the index buffer. For triangle modes they address vertices,
// relative to the owning Area's VertexOffset.
type Element struct {
	Mode   PrimitiveMode
	Offset int
	Count  int
}

// GeometryType discriminates the Geometry variants.
type GeometryType int

const (
	GeometryTypeMeta GeometryType = iota
	GeometryTypePoint
	GeometryTypeMultiPoint
	GeometryTypeLine
	GeometryTypeArea
)

func (g GeometryType) String() string {
	switch g {
	case GeometryTypeMeta:
		return "Meta"
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeMultiPoint:
		return "MultiPoint"
	case GeometryTypeLine:
		return "Line"
	case GeometryTypeArea:
		return "Area"
	default:
		return "Unknown"
	}
}

// Geometry is the spatial part of an Object: one of *MetaGeometry,
// *PointGeometry, *MultiPointGeometry, *LineGeometry or *AreaGeometry.
type Geometry interface {
	Type() GeometryType
	isGeometry()
}

// MetaGeometry marks objects without spatial representation (M_COVR, C_AGGR...).
type MetaGeometry struct{}

// PointGeometry is a single projected position.
type PointGeometry struct {
	Point Point
}

// MultiPointGeometry holds x, y, depth triples (soundings).
type MultiPointGeometry struct {
	Points []float64
}

// Len returns the number of points.
func (g *MultiPointGeometry) Len() int { return len(g.Points) / 3 }

// At returns point i and its depth.
func (g *MultiPointGeometry) At(i int) (Point, float64) {
	return Point{g.Points[3*i], g.Points[3*i+1]}, g.Points[3*i+2]
}

// LineGeometry is a set of line-strip-with-adjacency primitives.
type LineGeometry struct {
	Elements []Element
	Centre   Point
}

// AreaGeometry holds boundary primitives and the triangulated interior.
type AreaGeometry struct {
	Lines        []Element
	Triangles    []Element
	VertexOffset int // first vertex of the triangle patches
	Centre       Point
}

func (*MetaGeometry) Type() GeometryType       { return GeometryTypeMeta }
func (*PointGeometry) Type() GeometryType      { return GeometryTypePoint }
func (*MultiPointGeometry) Type() GeometryType { return GeometryTypeMultiPoint }
func (*LineGeometry) Type() GeometryType       { return GeometryTypeLine }
func (*AreaGeometry) Type() GeometryType       { return GeometryTypeArea }

func (*MetaGeometry) isGeometry()       {}
func (*PointGeometry) isGeometry()      {}
func (*MultiPointGeometry) isGeometry() {}
func (*LineGeometry) isGeometry()       {}
func (*AreaGeometry) isGeometry()       {}
