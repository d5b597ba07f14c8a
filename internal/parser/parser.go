package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/beetlebugorg/osenc/internal/log"
)

// Projection maps WGS-84 positions into the planar space of the vertex
// buffer. Edge and node tables are stored already projected; only point
// geometry goes through the projection.
type Projection interface {
	FromWGS84(lon, lat float64) (x, y float64)
}

// identity is used when no projection is configured.
type identity struct{}

func (identity) FromWGS84(lon, lat float64) (float64, float64) { return lon, lat }

// DecodeOptions configures a chart decode
type DecodeOptions struct {
	// Projection converts point geometry. Nil keeps lon/lat as x/y.
	Projection Projection

	// Catalog declares attribute value types. Nil uses DefaultCatalog.
	Catalog AttributeCatalog

	// TextEncoding transcodes string attributes to UTF-8.
	// Nil means the strings are UTF-8 already.
	TextEncoding encoding.Encoding

	// Validate: if true, check that no element references data outside the
	// decoded buffers
	// Default: true
	Validate bool
}

// DefaultDecodeOptions returns decode options with defaults
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		Catalog:  DefaultCatalog(),
		Validate: true,
	}
}

// pendingObject is an object whose line or area geometry waits for the
// node and edge tables, which may follow it in the stream.
type pendingObject struct {
	builder *ObjectBuilder
	kind    GeometryType
	refs    []int32
	patches []patch
}

// decodeState is threaded through one decode pass.
type decodeState struct {
	opts    DecodeOptions
	header  Header
	vb      vertexBuffer
	tables  *geometryTables
	objects []*pendingObject
	current *pendingObject
}

func newDecodeState(opts DecodeOptions) *decodeState {
	if opts.Projection == nil {
		opts.Projection = identity{}
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	s := &decodeState{opts: opts}
	s.tables = newGeometryTables(&s.vb)
	return s
}

// Decode reads a complete OSENC cell from r.
//
// Decoding stops without error at the end of the stream or at the first
// record of a type the decoder does not know. On error no chart is
// returned.
func Decode(r io.Reader, opts DecodeOptions) (*Chart, error) {
	s := newDecodeState(opts)
	rr := NewRecordReader(r)

	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		parsed, ok, err := parseRecord(rec, chartRecords)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debug("osenc: unknown record type, stopping",
				zap.Stringer("type", rec.Type),
				zap.Int64("offset", rec.Offset))
			break
		}

		if err := s.apply(parsed); err != nil {
			return nil, recordError(rec, err)
		}
	}

	chart, err := s.finish()
	if err != nil {
		return nil, err
	}

	if opts.Validate {
		if err := chart.Validate(); err != nil {
			return nil, &FormatError{Reason: "validation failed", Err: err}
		}
	}

	log.Debug("osenc: decoded chart",
		zap.String("cell", chart.Header.CellName),
		zap.Int("objects", len(chart.Objects)),
		zap.Int("vertices", chart.VertexCount()),
		zap.Int("indices", len(chart.Indices)))
	return chart, nil
}

// DecodeFile decodes the named OSENC file.
func DecodeFile(path string, opts DecodeOptions) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	chart, err := Decode(f, opts)
	if err != nil {
		return nil, withPath(err, path)
	}
	return chart, nil
}

// recordError attributes err to rec.
func recordError(rec Record, err error) error {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return &FormatError{Record: rec.Type, Offset: rec.Offset, Reason: "cannot apply record", Err: err}
	}
	if fe.Record == 0 {
		fe.Record = rec.Type
		fe.Offset = rec.Offset
	}
	return err
}

func (s *decodeState) noObject() error {
	return &FormatError{Reason: "record outside of a feature"}
}

// apply folds one typed record into the state.
func (s *decodeState) apply(r record) error {
	if s.header.apply(r) {
		return nil
	}

	switch v := r.(type) {
	case featureIDRecord:
		s.current = &pendingObject{
			builder: NewObjectBuilder(uint32(v.ID), v.Code),
			kind:    GeometryTypeMeta,
		}
		s.objects = append(s.objects, s.current)

	case attributeRecord:
		if s.current == nil {
			return s.noObject()
		}
		a, err := decodeAttribute(v, s.opts.Catalog, s.opts.TextEncoding)
		if err != nil {
			return err
		}
		s.current.builder.AddAttribute(v.Code, a)

	case pointRecord:
		if err := s.startGeometry(GeometryTypePoint); err != nil {
			return err
		}
		x, y := s.opts.Projection.FromWGS84(v.Lon, v.Lat)
		bbox := BBox{Min: Point{x - 10, y - 10}, Max: Point{x + 10, y + 10}}
		return s.setGeometry(&PointGeometry{Point: Point{x, y}}, bbox)

	case multipointRecord:
		if err := s.startGeometry(GeometryTypeMultiPoint); err != nil {
			return err
		}
		bbox := EmptyBBox()
		for i := 0; i+2 < len(v.Points); i += 3 {
			bbox.extend(v.Points[i], v.Points[i+1])
		}
		return s.setGeometry(&MultiPointGeometry{Points: v.Points}, bbox)

	case lineRecord:
		if err := s.startGeometry(GeometryTypeLine); err != nil {
			return err
		}
		s.current.refs = append(s.current.refs, v.Refs...)

	case areaRecord:
		if err := s.startGeometry(GeometryTypeArea); err != nil {
			return err
		}
		s.current.refs = append(s.current.refs, v.Refs...)
		s.current.patches = append(s.current.patches, v.Patches...)

	case edgeTableRecord:
		s.tables.addEdges(v)

	case nodeTableRecord:
		s.tables.addNodes(v)

	case coverageRecord:
	}
	return nil
}

// startGeometry checks that the current object can take geometry of kind.
// Line and area records may repeat; each appends to the pending data.
func (s *decodeState) startGeometry(kind GeometryType) error {
	if s.current == nil {
		return s.noObject()
	}
	cur := s.current
	switch {
	case cur.kind == GeometryTypeMeta:
	case cur.kind == kind && (kind == GeometryTypeLine || kind == GeometryTypeArea):
	default:
		return &FormatError{
			Reason: fmt.Sprintf("feature %d: %v geometry after %v geometry", cur.builder.Object().ID, kind, cur.kind),
			Err:    ErrGeometryAlreadySet,
		}
	}
	cur.kind = kind
	return nil
}

func (s *decodeState) setGeometry(g Geometry, bbox BBox) error {
	if err := s.current.builder.SetGeometry(g, bbox); err != nil {
		return &FormatError{Reason: fmt.Sprintf("feature %d", s.current.builder.Object().ID), Err: err}
	}
	return nil
}

// finish assembles pending line and area geometry and hands the buffers
// over to a Chart.
func (s *decodeState) finish() (*Chart, error) {
	asm := &assembler{vertices: &s.vb, tables: s.tables}
	objects := make([]*Object, 0, len(s.objects))

	for _, p := range s.objects {
		obj := p.builder.Object()
		var err error
		switch p.kind {
		case GeometryTypeMeta:
			err = p.builder.SetGeometry(&MetaGeometry{}, EmptyBBox())
		case GeometryTypeLine:
			err = s.finishLine(asm, p)
		case GeometryTypeArea:
			err = s.finishArea(asm, p)
		}
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("assemble feature %d (%s)", obj.ID, obj.ClassName()), Err: err}
		}
		objects = append(objects, obj)
	}

	return &Chart{
		Header:   s.header,
		Vertices: s.vb.data,
		Indices:  asm.indices,
		Objects:  objects,
	}, nil
}

func (s *decodeState) finishLine(asm *assembler, p *pendingObject) error {
	id := p.builder.Object().ID
	elems, err := asm.assembleLines(id, p.refs)
	if err != nil {
		return err
	}
	g := &LineGeometry{
		Elements: elems,
		Centre:   lineCentre(&s.vb, asm.indices, elems),
	}
	return p.builder.SetGeometry(g, lineBBox(&s.vb, asm.indices, elems))
}

func (s *decodeState) finishArea(asm *assembler, p *pendingObject) error {
	id := p.builder.Object().ID
	lines, triangles, offset, err := asm.assembleArea(id, p.refs, p.patches)
	if err != nil {
		return err
	}

	var bbox BBox
	if len(lines) > 0 {
		bbox = lineBBox(&s.vb, asm.indices, lines)
	} else {
		bbox = patchBBox(&s.vb, triangles, offset)
	}

	centre, ok := areaCentre(&s.vb, triangles, offset)
	if !ok {
		centre = bbox.Centre()
		log.Debug("osenc: degenerate area, using bounding box centre",
			zap.Uint32("feature", id))
	}

	g := &AreaGeometry{
		Lines:        lines,
		Triangles:    triangles,
		VertexOffset: offset,
		Centre:       centre,
	}
	return p.builder.SetGeometry(g, bbox)
}
