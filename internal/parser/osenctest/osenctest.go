// Package osenctest builds OSENC record streams for tests.
package osenctest

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Record type tags.
const (
	TypeVersion        = 1
	TypeCellName       = 2
	TypePublishDate    = 3
	TypeEdition        = 4
	TypeUpdateDate     = 5
	TypeUpdate         = 6
	TypeNativeScale    = 7
	TypeCreateDate     = 8
	TypeFeatureID      = 64
	TypeAttribute      = 65
	TypePoint          = 80
	TypeLine           = 81
	TypeArea           = 82
	TypeMultiPoint     = 83
	TypeEdgeNodeTable  = 96
	TypeConnectedNodes = 97
	TypeCoverage       = 98
	TypeNoCoverage     = 99
	TypeCellExtent     = 100
)

// Triangle patch modes.
const (
	Triangles     = 4
	TriangleStrip = 5
	TriangleFan   = 6
)

// Attribute value types.
const (
	ValueInt    = 0
	ValueReal   = 2
	ValueString = 4
	ValueNone   = 5
)

// Node is one connected-node table entry.
type Node struct {
	ID   uint32
	X, Y float32
}

// Edge is one edge-node table entry; Points holds x/y pairs.
type Edge struct {
	ID     uint32
	Points []float32
}

// Patch is one triangle patch of an area record.
type Patch struct {
	Mode     uint8
	Vertices []float32
}

// Triple is a (start node, signed edge, end node) reference.
type Triple [3]int32

// Builder accumulates records. Methods return the builder for chaining.
type Builder struct {
	buf     bytes.Buffer
	records int
	offsets []int
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// payload is a little-endian payload writer.
type payload struct {
	bytes.Buffer
}

func (p *payload) put(vs ...interface{}) *payload {
	for _, v := range vs {
		_ = binary.Write(&p.Buffer, binary.LittleEndian, v)
	}
	return p
}

func (p *payload) cstring(s string) *payload {
	p.WriteString(s)
	p.WriteByte(0)
	return p
}

// Record appends a raw record.
func (b *Builder) Record(typ uint16, data []byte) *Builder {
	return b.RecordWithLength(typ, uint32(len(data)+6), data)
}

// RecordWithLength appends a record whose header declares length, which
// need not match data.
func (b *Builder) RecordWithLength(typ uint16, length uint32, data []byte) *Builder {
	b.offsets = append(b.offsets, b.buf.Len())
	var h [6]byte
	binary.LittleEndian.PutUint16(h[0:2], typ)
	binary.LittleEndian.PutUint32(h[2:6], length)
	b.buf.Write(h[:])
	b.buf.Write(data)
	b.records++
	return b
}

func (b *Builder) Version(v uint16) *Builder {
	return b.Record(TypeVersion, new(payload).put(v).Bytes())
}

func (b *Builder) CellName(name string) *Builder {
	return b.Record(TypeCellName, new(payload).cstring(name).Bytes())
}

func (b *Builder) PublishDate(yyyymmdd string) *Builder {
	return b.Record(TypePublishDate, new(payload).cstring(yyyymmdd).Bytes())
}

func (b *Builder) UpdateDate(yyyymmdd string) *Builder {
	return b.Record(TypeUpdateDate, new(payload).cstring(yyyymmdd).Bytes())
}

func (b *Builder) CreateDate(s string) *Builder {
	return b.Record(TypeCreateDate, new(payload).cstring(s).Bytes())
}

func (b *Builder) Edition(n uint16) *Builder {
	return b.Record(TypeEdition, new(payload).put(n).Bytes())
}

func (b *Builder) UpdateNumber(n uint16) *Builder {
	return b.Record(TypeUpdate, new(payload).put(n).Bytes())
}

func (b *Builder) Scale(scale uint32) *Builder {
	return b.Record(TypeNativeScale, new(payload).put(scale).Bytes())
}

// Extent appends a cell extent from south-west and north-east corners.
func (b *Builder) Extent(swLat, swLon, neLat, neLon float64) *Builder {
	p := new(payload).put(
		swLat, swLon, // sw
		neLat, swLon, // nw
		neLat, neLon, // ne
		swLat, neLon, // se
	)
	return b.Record(TypeCellExtent, p.Bytes())
}

// Header appends a complete, valid header for cell name.
func (b *Builder) Header(name string) *Builder {
	return b.Version(201).
		CellName(name).
		Edition(3).
		UpdateNumber(1).
		PublishDate("20230115").
		UpdateDate("20230301").
		Scale(22000).
		CreateDate("20230302").
		Extent(59.0, 17.0, 59.5, 18.0)
}

func (b *Builder) Feature(code, id uint16, primitive uint8) *Builder {
	return b.Record(TypeFeatureID, new(payload).put(code, id, primitive).Bytes())
}

// Attribute appends an attribute record with raw value bytes.
func (b *Builder) Attribute(code, featureID uint16, valueType uint8, value []byte) *Builder {
	p := new(payload).put(code, featureID, valueType)
	p.Write(value)
	return b.Record(TypeAttribute, p.Bytes())
}

func (b *Builder) IntAttribute(code, featureID uint16, v int32) *Builder {
	return b.Attribute(code, featureID, ValueInt, new(payload).put(v).Bytes())
}

func (b *Builder) RealAttribute(code, featureID uint16, v float64) *Builder {
	return b.Attribute(code, featureID, ValueReal, new(payload).put(v).Bytes())
}

func (b *Builder) StringAttribute(code, featureID uint16, s string) *Builder {
	return b.Attribute(code, featureID, ValueString, new(payload).cstring(s).Bytes())
}

func (b *Builder) NoneAttribute(code, featureID uint16) *Builder {
	return b.Attribute(code, featureID, ValueNone, nil)
}

func (b *Builder) Point(lat, lon float64) *Builder {
	return b.Record(TypePoint, new(payload).put(lat, lon).Bytes())
}

// MultiPoint appends x, y, depth triples.
func (b *Builder) MultiPoint(points ...[3]float64) *Builder {
	p := new(payload).put(zeroExtent[:], uint32(len(points)))
	for _, pt := range points {
		p.put(pt[:])
	}
	return b.Record(TypeMultiPoint, p.Bytes())
}

var zeroExtent [4]float64

func (b *Builder) Line(refs ...Triple) *Builder {
	p := new(payload).put(zeroExtent[:], uint32(len(refs)))
	for _, t := range refs {
		p.put(t[:])
	}
	return b.Record(TypeLine, p.Bytes())
}

// Area appends an area record with one contour per call.
func (b *Builder) Area(patches []Patch, refs ...Triple) *Builder {
	p := new(payload).put(zeroExtent[:], uint32(1), uint32(len(patches)), uint32(len(refs)))
	p.put(int32(len(refs)))
	for _, pt := range patches {
		p.put(pt.Mode, uint32(len(pt.Vertices)/2), zeroExtent[:], pt.Vertices)
	}
	for _, t := range refs {
		p.put(t[:])
	}
	return b.Record(TypeArea, p.Bytes())
}

func (b *Builder) Nodes(nodes ...Node) *Builder {
	p := new(payload).put(uint32(len(nodes)))
	for _, n := range nodes {
		p.put(n.ID, n.X, n.Y)
	}
	return b.Record(TypeConnectedNodes, p.Bytes())
}

func (b *Builder) Edges(edges ...Edge) *Builder {
	p := new(payload).put(uint32(len(edges)))
	for _, e := range edges {
		p.put(e.ID, uint32(len(e.Points)/2), e.Points)
	}
	return b.Record(TypeEdgeNodeTable, p.Bytes())
}

func (b *Builder) Coverage() *Builder {
	return b.Record(TypeCoverage, nil)
}

// Len returns the number of records so far.
func (b *Builder) Len() int {
	return b.records
}

// Bytes returns the encoded stream.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Prefix returns the stream cut after the first n records.
func (b *Builder) Prefix(n int) []byte {
	if n >= b.records {
		return b.Bytes()
	}
	return append([]byte(nil), b.buf.Bytes()[:b.offsets[n]]...)
}

// Truncate returns the stream with its last n bytes removed.
func (b *Builder) Truncate(n int) []byte {
	data := b.buf.Bytes()
	if n > len(data) {
		n = len(data)
	}
	return append([]byte(nil), data[:len(data)-n]...)
}

// Reader returns a reader over the encoded stream.
func (b *Builder) Reader() io.Reader {
	return bytes.NewReader(b.Bytes())
}

// Float32s is a helper for writing vertex lists inline.
func Float32s(vs ...float64) []float32 {
	out := make([]float32, len(vs))
	for i, v := range vs {
		out[i] = float32(v)
	}
	return out
}
