package parser

import (
	"time"
)

// record is the typed form of one raw Record. Each pass switches over the
// concrete types it understands.
type record interface {
	kind() RecordType
}

type versionRecord struct{ Version uint16 }

type cellNameRecord struct{ Name string }

type dateRecord struct {
	Type RecordType // publish, update or creation date
	Raw  string
	Date time.Time // zero when Raw is not yyyymmdd
}

type numberRecord struct {
	Type  RecordType // edition or update number
	Value uint16
}

type scaleRecord struct{ Scale uint32 }

type extentRecord struct{ SW, NW, NE, SE LatLon }

type featureIDRecord struct {
	Code      uint16
	ID        uint16
	Primitive uint8
}

type attributeRecord struct {
	Code      uint16
	FeatureID uint16
	ValueType AttributeType
	Data      []byte // aliases the record payload
}

type pointRecord struct{ Lat, Lon float64 }

type multipointRecord struct {
	Points []float64 // x, y, depth triples
}

type lineRecord struct {
	Refs []int32 // node, edge, end node triples
}

type patch struct {
	Mode     PrimitiveMode
	Vertices []float32 // x, y pairs
}

type areaRecord struct {
	Refs    []int32
	Patches []patch
}

type edgeEntry struct {
	ID     uint32
	Points []float32
}

type edgeTableRecord struct{ Edges []edgeEntry }

type nodeEntry struct {
	ID   uint32
	X, Y float32
}

type nodeTableRecord struct{ Nodes []nodeEntry }

type coverageRecord struct{ Type RecordType }

func (versionRecord) kind() RecordType      { return RecordVersion }
func (cellNameRecord) kind() RecordType     { return RecordCellName }
func (r dateRecord) kind() RecordType       { return r.Type }
func (r numberRecord) kind() RecordType     { return r.Type }
func (scaleRecord) kind() RecordType        { return RecordNativeScale }
func (extentRecord) kind() RecordType       { return RecordCellExtent }
func (featureIDRecord) kind() RecordType    { return RecordFeatureID }
func (attributeRecord) kind() RecordType    { return RecordAttribute }
func (pointRecord) kind() RecordType        { return RecordPointGeometry }
func (multipointRecord) kind() RecordType   { return RecordMultiPoint }
func (lineRecord) kind() RecordType         { return RecordLineGeometry }
func (areaRecord) kind() RecordType         { return RecordAreaGeometry }
func (edgeTableRecord) kind() RecordType    { return RecordEdgeNodeTable }
func (nodeTableRecord) kind() RecordType    { return RecordConnectedNodes }
func (r coverageRecord) kind() RecordType   { return r.Type }

// recordSet is the set of record types a pass understands.
type recordSet map[RecordType]bool

var headerRecords = recordSet{
	RecordVersion:     true,
	RecordCellName:    true,
	RecordPublishDate: true,
	RecordEdition:     true,
	RecordUpdateDate:  true,
	RecordUpdate:      true,
	RecordNativeScale: true,
	RecordCreateDate:  true,
	RecordCellExtent:  true,
}

var chartRecords = recordSet{
	RecordVersion:        true,
	RecordCellName:       true,
	RecordPublishDate:    true,
	RecordEdition:        true,
	RecordUpdateDate:     true,
	RecordUpdate:         true,
	RecordNativeScale:    true,
	RecordCreateDate:     true,
	RecordCellExtent:     true,
	RecordFeatureID:      true,
	RecordAttribute:      true,
	RecordPointGeometry:  true,
	RecordLineGeometry:   true,
	RecordAreaGeometry:   true,
	RecordMultiPoint:     true,
	RecordEdgeNodeTable:  true,
	RecordConnectedNodes: true,
	RecordCoverage:       true,
	RecordNoCoverage:     true,
}

const dateLayout = "20060102"

// parseRecord converts rec into its typed form. ok is false when rec's type
// is not in set; the caller treats that as the end of its pass.
func parseRecord(rec Record, set recordSet) (r record, ok bool, err error) {
	if !set[rec.Type] {
		return nil, false, nil
	}
	c := newCursor(rec.Payload)

	switch rec.Type {
	case RecordVersion:
		r = versionRecord{Version: c.u16()}
	case RecordCellName:
		r = cellNameRecord{Name: string(c.cstring())}
	case RecordPublishDate, RecordUpdateDate, RecordCreateDate:
		raw := string(c.cstring())
		d := dateRecord{Type: rec.Type, Raw: raw}
		if t, perr := time.Parse(dateLayout, raw); perr == nil {
			d.Date = t
		}
		r = d
	case RecordEdition, RecordUpdate:
		r = numberRecord{Type: rec.Type, Value: c.u16()}
	case RecordNativeScale:
		r = scaleRecord{Scale: c.u32()}
	case RecordCellExtent:
		var e extentRecord
		e.SW.Lat, e.SW.Lon = c.f64(), c.f64()
		e.NW.Lat, e.NW.Lon = c.f64(), c.f64()
		e.NE.Lat, e.NE.Lon = c.f64(), c.f64()
		e.SE.Lat, e.SE.Lon = c.f64(), c.f64()
		r = e
	case RecordFeatureID:
		r = featureIDRecord{Code: c.u16(), ID: c.u16(), Primitive: c.u8()}
	case RecordAttribute:
		a := attributeRecord{Code: c.u16(), FeatureID: c.u16(), ValueType: AttributeType(c.u8())}
		if !c.short {
			a.Data = rec.Payload[c.off:]
		}
		r = a
	case RecordPointGeometry:
		r = pointRecord{Lat: c.f64(), Lon: c.f64()}
	case RecordMultiPoint:
		r, err = parseMultipoint(c)
	case RecordLineGeometry:
		r, err = parseLine(c)
	case RecordAreaGeometry:
		r, err = parseArea(c)
	case RecordEdgeNodeTable:
		r, err = parseEdgeTable(c)
	case RecordConnectedNodes:
		r, err = parseNodeTable(c)
	case RecordCoverage, RecordNoCoverage:
		r = coverageRecord{Type: rec.Type}
	}

	if err == nil && c.short {
		err = &FormatError{Reason: "payload too short"}
	}
	if err != nil {
		if fe, isFormat := err.(*FormatError); isFormat {
			fe.Record = rec.Type
			fe.Offset = rec.Offset
			return nil, true, fe
		}
		return nil, true, &FormatError{Record: rec.Type, Offset: rec.Offset, Reason: "malformed payload", Err: err}
	}
	return r, true, nil
}

// geometryExtentSize is the four float64 lat/lon extent leading every
// line, area and multipoint payload.
const geometryExtentSize = 4 * 8

func checkExact(c *cursor, want int) error {
	if got := len(c.data); got != want {
		return &ErrPayloadSize{Want: want, Got: got}
	}
	return nil
}

func parseMultipoint(c *cursor) (record, error) {
	c.skip(geometryExtentSize)
	n := int(c.u32())
	if c.short {
		return nil, &FormatError{Reason: "payload too short"}
	}
	if err := checkExact(c, geometryExtentSize+4+n*3*8); err != nil {
		return nil, err
	}
	pts := make([]float64, 3*n)
	for i := range pts {
		pts[i] = c.f64()
	}
	return multipointRecord{Points: pts}, nil
}

func readTriples(c *cursor, n int) []int32 {
	refs := make([]int32, 3*n)
	for i := range refs {
		refs[i] = c.i32()
	}
	return refs
}

func parseLine(c *cursor) (record, error) {
	c.skip(geometryExtentSize)
	n := int(c.u32())
	if c.short {
		return nil, &FormatError{Reason: "payload too short"}
	}
	if err := checkExact(c, geometryExtentSize+4+n*3*4); err != nil {
		return nil, err
	}
	return lineRecord{Refs: readTriples(c, n)}, nil
}

// patchHeaderSize is mode byte + vertex count + four float64 bbox values.
const patchHeaderSize = 1 + 4 + 4*8

// edgeHeaderSize is edge id + point count.
const edgeHeaderSize = 4 + 4

func parseArea(c *cursor) (record, error) {
	c.skip(geometryExtentSize)
	contours := int(c.u32())
	patches := int(c.u32())
	n := int(c.u32())
	c.skip(contours * 4)
	if c.short {
		return nil, &FormatError{Reason: "payload too short"}
	}

	a := areaRecord{Patches: make([]patch, 0, min(patches, c.remaining()/patchHeaderSize))}
	for i := 0; i < patches; i++ {
		mode := PrimitiveMode(c.u8())
		nv := int(c.u32())
		c.skip(4 * 8)
		if c.short || c.remaining() < nv*2*4 {
			return nil, &FormatError{Reason: "triangle patch exceeds payload"}
		}
		switch mode {
		case Triangles, TriangleStrip, TriangleFan:
		default:
			return nil, &FormatError{Reason: "unknown triangle patch mode " + mode.String()}
		}
		vs := make([]float32, 2*nv)
		for j := range vs {
			vs[j] = c.f32()
		}
		a.Patches = append(a.Patches, patch{Mode: mode, Vertices: vs})
	}

	if err := checkExact(c, c.off+n*3*4); err != nil {
		return nil, err
	}
	a.Refs = readTriples(c, n)
	return a, nil
}

func parseEdgeTable(c *cursor) (record, error) {
	n := int(c.u32())
	if c.short {
		return nil, &FormatError{Reason: "payload too short"}
	}
	t := edgeTableRecord{Edges: make([]edgeEntry, 0, min(n, c.remaining()/edgeHeaderSize))}
	for i := 0; i < n; i++ {
		id := c.u32()
		pcnt := int(c.u32())
		if c.short || c.remaining() < pcnt*2*4 {
			return nil, &ErrPayloadSize{Want: c.off + pcnt*2*4, Got: len(c.data)}
		}
		pts := make([]float32, 2*pcnt)
		for j := range pts {
			pts[j] = c.f32()
		}
		t.Edges = append(t.Edges, edgeEntry{ID: id, Points: pts})
	}
	if c.remaining() != 0 {
		return nil, &ErrPayloadSize{Want: c.off, Got: len(c.data)}
	}
	return t, nil
}

func parseNodeTable(c *cursor) (record, error) {
	n := int(c.u32())
	if c.short {
		return nil, &FormatError{Reason: "payload too short"}
	}
	if err := checkExact(c, 4+n*12); err != nil {
		return nil, err
	}
	t := nodeTableRecord{Nodes: make([]nodeEntry, n)}
	for i := range t.Nodes {
		t.Nodes[i] = nodeEntry{ID: c.u32(), X: c.f32(), Y: c.f32()}
	}
	return t, nil
}
