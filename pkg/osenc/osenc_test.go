package osenc

import (
	"archive/zip"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/beetlebugorg/osenc/internal/parser/osenctest"
)

type triple = osenctest.Triple

// testCell builds a cell with one object of every geometry kind.
//
// Object boxes with the identity projection: 1 point (7.2,49.1)-(27.2,69.1),
// 2 line (-10,0)-(10,20), 3 area (0,0)-(10,10), 4 soundings (1,-1)-(4,2),
// 5 meta, empty.
func testCell(name string) *osenctest.Builder {
	square := osenctest.Float32s(0, 0, 10, 0, 10, 10, 0, 0, 10, 10, 0, 10)
	return osenctest.New().
		Header(name).
		Nodes(osenctest.Node{ID: 1, X: 0, Y: 0}, osenctest.Node{ID: 2, X: 10, Y: 10}).
		Edges(
			osenctest.Edge{ID: 10, Points: osenctest.Float32s(10, 0)},
			osenctest.Edge{ID: 20, Points: osenctest.Float32s(10, 0, 10, 10, 0, 10)},
		).
		Feature(17, 1, 1).
		StringAttribute(116, 1, "Sk\xe4r").
		Point(59.1, 17.2).
		Feature(30, 2, 2).
		Line(triple{1, 10, 2}).
		Feature(42, 3, 3).
		RealAttribute(87, 3, 5.5).
		Area([]osenctest.Patch{{Mode: osenctest.Triangles, Vertices: square}}, triple{1, 20, 1}).
		Feature(129, 4, 1).
		MultiPoint([3]float64{1, 2, 3.5}, [3]float64{4, -1, 7}).
		Feature(302, 5, 3)
}

// writeCell writes b to dir/name and returns the path.
func writeCell(t *testing.T, dir, name string, b *osenctest.Builder) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseCell(t *testing.T, b *osenctest.Builder) *Chart {
	t.Helper()
	path := writeCell(t, t.TempDir(), "TEST.S57", b)
	chart, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return chart
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func objectIDs(objects []*Object) []uint32 {
	ids := make([]uint32, len(objects))
	for i, o := range objects {
		ids[i] = o.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestParse(t *testing.T) {
	chart := parseCell(t, testCell("SE3AQ001"))

	if chart.CellName() != "SE3AQ001" {
		t.Errorf("CellName() = %q", chart.CellName())
	}
	if chart.ObjectCount() != 5 {
		t.Fatalf("ObjectCount() = %d, want 5", chart.ObjectCount())
	}
	if chart.Scale() != 22000 || chart.Edition() != 3 || chart.UpdateNumber() != 1 || chart.Version() != 201 {
		t.Errorf("metadata = scale %d edition %d update %d version %d",
			chart.Scale(), chart.Edition(), chart.UpdateNumber(), chart.Version())
	}
	if got := chart.PublishDate().Format("20060102"); got != "20230115" {
		t.Errorf("PublishDate() = %s", got)
	}
	if got := chart.UpdateDate().Format("20060102"); got != "20230301" {
		t.Errorf("UpdateDate() = %s", got)
	}
	if chart.CreationDate() != "20230302" {
		t.Errorf("CreationDate() = %q", chart.CreationDate())
	}
	if chart.UsageBand() != UsageBandCoastal {
		t.Errorf("UsageBand() = %v, want Coastal", chart.UsageBand())
	}
	if chart.VertexCount() != 14 || len(chart.Vertices()) != 28 {
		t.Errorf("VertexCount() = %d, len(Vertices()) = %d", chart.VertexCount(), len(chart.Vertices()))
	}
	if len(chart.Indices()) != 12 {
		t.Errorf("len(Indices()) = %d, want 12", len(chart.Indices()))
	}

	cov, ok := chart.Coverage()
	want := Bounds{MinLon: 17, MaxLon: 18, MinLat: 59, MaxLat: 59.5}
	if !ok || cov != want {
		t.Errorf("Coverage() = %+v, %v, want %+v", cov, ok, want)
	}

	box := chart.BBox()
	if box.Min != (Point{X: -10, Y: -1}) || !approxEqual(box.Max.X, 27.2) || !approxEqual(box.Max.Y, 69.1) {
		t.Errorf("BBox() = %+v, want (-10,-1)-(27.2,69.1)", box)
	}

	counts := chart.CountByGeometry()
	for _, typ := range []GeometryType{GeometryTypeMeta, GeometryTypePoint, GeometryTypeMultiPoint, GeometryTypeLine, GeometryTypeArea} {
		if counts[typ] != 1 {
			t.Errorf("CountByGeometry()[%v] = %d, want 1", typ, counts[typ])
		}
	}
}

func TestParseCharset(t *testing.T) {
	path := writeCell(t, t.TempDir(), "TEST.S57", testCell("SE3AQ001"))
	p := NewParser()

	opts := DefaultParseOptions()
	opts.Charset = "iso-8859-1"
	chart, err := p.ParseWithOptions(path, opts)
	if err != nil {
		t.Fatalf("ParseWithOptions() error = %v", err)
	}
	a, ok := chart.Objects()[0].AttributeByName("OBJNAM")
	if !ok || a.String != "Skär" {
		t.Errorf("OBJNAM = %q, %v, want Skär", a.String, ok)
	}

	opts.Charset = "no-such-charset"
	if _, err := p.ParseWithOptions(path, opts); err == nil {
		t.Error("ParseWithOptions() with unknown charset succeeded")
	}
}

func TestParseObjectClassFilter(t *testing.T) {
	path := writeCell(t, t.TempDir(), "TEST.S57", testCell("SE3AQ001"))

	opts := DefaultParseOptions()
	opts.ObjectClassFilter = []string{"depare", "SOUNDG"}
	chart, err := NewParser().ParseWithOptions(path, opts)
	if err != nil {
		t.Fatalf("ParseWithOptions() error = %v", err)
	}
	if got := objectIDs(chart.Objects()); !reflect.DeepEqual(got, []uint32{3, 4}) {
		t.Errorf("object ids = %v, want [3 4]", got)
	}
	// the shared buffers are untouched by filtering
	if chart.VertexCount() != 14 {
		t.Errorf("VertexCount() = %d, want 14", chart.VertexCount())
	}
}

func TestObjectsInBounds(t *testing.T) {
	chart := parseCell(t, testCell("SE3AQ001"))

	tests := []struct {
		name string
		box  BBox
		want []uint32
	}{
		{"point only", BBox{Min: Point{X: 20, Y: 50}, Max: Point{X: 21, Y: 51}}, []uint32{1}},
		{"near origin", BBox{Min: Point{X: 2, Y: 0.5}, Max: Point{X: 3, Y: 1.5}}, []uint32{2, 3, 4}},
		{"line adjacency", BBox{Min: Point{X: -9, Y: 15}, Max: Point{X: -8, Y: 16}}, []uint32{2}},
		{"nothing", BBox{Min: Point{X: 100, Y: 100}, Max: Point{X: 101, Y: 101}}, []uint32{}},
		{"empty box", EmptyBBox(), []uint32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objectIDs(chart.ObjectsInBounds(tt.box))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ObjectsInBounds() = %v, want %v", got, tt.want)
			}
			linear := objectIDs(chart.objectsInBoundsLinear(tt.box))
			if !reflect.DeepEqual(linear, tt.want) {
				t.Errorf("objectsInBoundsLinear() = %v, want %v", linear, tt.want)
			}
		})
	}
}

func TestParseZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "charts.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("SENC/SE3AQ001.S57")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(testCell("SE3AQ001").Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	p := NewParser()
	chart, err := p.Parse("zip://" + zipPath + "!SENC/SE3AQ001.S57")
	if err != nil {
		t.Fatalf("Parse(zip) error = %v", err)
	}
	if chart.ObjectCount() != 5 {
		t.Errorf("ObjectCount() = %d, want 5", chart.ObjectCount())
	}

	_, err = p.Parse("zip://" + zipPath + "!SENC/MISSING.S57")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("Parse(missing entry) error = %v, want *IOError", err)
	}

	if _, err := p.Parse("zip://" + zipPath); err == nil {
		t.Error("Parse(zip without entry) succeeded")
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	p := NewParser()

	t.Run("missing file", func(t *testing.T) {
		name := filepath.Join(dir, "nope.S57")
		_, err := p.Parse(name)
		var ioErr *IOError
		if !errors.As(err, &ioErr) || ioErr.Path != name {
			t.Errorf("Parse() error = %v, want *IOError for %s", err, name)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		b := testCell("SE3AQ001")
		path := filepath.Join(dir, "short.S57")
		if err := os.WriteFile(path, b.Truncate(3), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := p.Parse(path)
		var ioErr *IOError
		if !errors.As(err, &ioErr) || ioErr.Path != path {
			t.Errorf("Parse() error = %v, want *IOError for %s", err, path)
		}
	})

	t.Run("second geometry", func(t *testing.T) {
		b := osenctest.New().Header("SE3AQ001").
			Feature(17, 1, 1).
			Point(59.1, 17.2).
			Point(59.2, 17.3)
		path := writeCell(t, dir, "twice.S57", b)
		_, err := p.Parse(path)
		var fe *FormatError
		if !errors.As(err, &fe) || !errors.Is(err, ErrGeometryAlreadySet) {
			t.Errorf("Parse() error = %v, want *FormatError wrapping ErrGeometryAlreadySet", err)
		}
	})
}

func TestReadOutline(t *testing.T) {
	dir := t.TempDir()
	p := NewParser()

	path := writeCell(t, dir, "SE3AQ001.S57", testCell("SE3AQ001"))
	o, err := p.ReadOutline(path)
	if err != nil {
		t.Fatalf("ReadOutline() error = %v", err)
	}
	if o.SW != (LatLon{Lon: 17, Lat: 59}) || o.NE != (LatLon{Lon: 18, Lat: 59.5}) {
		t.Errorf("corners SW %+v NE %+v", o.SW, o.NE)
	}
	if o.Scale != 22000 {
		t.Errorf("Scale = %d, want 22000", o.Scale)
	}

	noScale := osenctest.New().
		Version(201).
		CellName("SE3AQ002").
		PublishDate("20230115").
		UpdateDate("20230301").
		Extent(59, 17, 59.5, 18)
	path = writeCell(t, dir, "SE3AQ002.S57", noScale)
	_, err = p.ReadOutline(path)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("ReadOutline() error = %v, want *FormatError", err)
	}

	h, err := p.ReadHeader(path)
	if err != nil || h.CellName != "SE3AQ002" {
		t.Errorf("ReadHeader() = %+v, %v", h, err)
	}
}

func TestUsageBandFromCellName(t *testing.T) {
	tests := []struct {
		name string
		want UsageBand
	}{
		{"US1GC09M", UsageBandOverview},
		{"SE3AQ001", UsageBandCoastal},
		{"GB5X01NE", UsageBandHarbour},
		{"NO6B2345", UsageBandBerthing},
		{"XX9ABCDE", UsageBandUnknown},
		{"US", UsageBandUnknown},
		{"", UsageBandUnknown},
	}

	for _, tt := range tests {
		if got := UsageBandFromCellName(tt.name); got != tt.want {
			t.Errorf("UsageBandFromCellName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUsageBandScaleRange(t *testing.T) {
	tests := []struct {
		band     UsageBand
		min, max int
		name     string
	}{
		{UsageBandOverview, 1500000, 0, "Overview"},
		{UsageBandGeneral, 350000, 1500000, "General"},
		{UsageBandCoastal, 90000, 350000, "Coastal"},
		{UsageBandApproach, 22000, 90000, "Approach"},
		{UsageBandHarbour, 4000, 22000, "Harbour"},
		{UsageBandBerthing, 0, 4000, "Berthing"},
		{UsageBandUnknown, 0, 0, "Unknown"},
		{UsageBand(9), 0, 0, "Unknown"},
		{UsageBand(-1), 0, 0, "Unknown"},
	}

	for _, tt := range tests {
		lo, hi := tt.band.ScaleRange()
		if lo != tt.min || hi != tt.max {
			t.Errorf("%v.ScaleRange() = %d, %d, want %d, %d", tt.band, lo, hi, tt.min, tt.max)
		}
		if tt.band.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.band.String(), tt.name)
		}
	}
}

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8"} {
		enc, err := LookupCharset(name)
		if err != nil || enc != nil {
			t.Errorf("LookupCharset(%q) = %v, %v, want nil, nil", name, enc, err)
		}
	}
	for _, name := range []string{"latin1", "iso-8859-1", "windows-1252"} {
		if enc, err := LookupCharset(name); err != nil || enc == nil {
			t.Errorf("LookupCharset(%q) = %v, %v", name, enc, err)
		}
	}
	if _, err := LookupCharset("klingon"); err == nil {
		t.Error("LookupCharset(klingon) succeeded")
	}
}
