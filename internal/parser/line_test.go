package parser

import (
	"errors"
	"reflect"
	"testing"
)

func newTestAssembler(nodes []nodeEntry, edges []edgeEntry) *assembler {
	vb := &vertexBuffer{}
	tables := newGeometryTables(vb)
	tables.addNodes(nodeTableRecord{Nodes: nodes})
	tables.addEdges(edgeTableRecord{Edges: edges})
	return &assembler{vertices: vb, tables: tables}
}

// openTopology: nodes 1 (0,0) and 2 (10,10), edge 10 through (10,0).
func openTopology() *assembler {
	return newTestAssembler(
		[]nodeEntry{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 10, Y: 10}},
		[]edgeEntry{{ID: 10, Points: []float32{10, 0}}},
	)
}

// squareTopology: node 1 (0,0) and edge 20 through the other three corners.
func squareTopology() *assembler {
	return newTestAssembler(
		[]nodeEntry{{ID: 1, X: 0, Y: 0}},
		[]edgeEntry{{ID: 20, Points: []float32{10, 0, 10, 10, 0, 10}}},
	)
}

func TestAssembleLines(t *testing.T) {
	tests := []struct {
		name         string
		asm          func() *assembler
		refs         []int32
		wantIndices  []uint32
		wantElems    []Element
		wantVertices int
	}{
		{
			name:         "open line mirrors both ends",
			asm:          openTopology,
			refs:         []int32{1, 10, 2},
			wantIndices:  []uint32{3, 0, 2, 1, 4},
			wantElems:    []Element{{Mode: LineStripAdjacency, Offset: 0, Count: 5}},
			wantVertices: 5,
		},
		{
			name:         "reversed edge",
			asm:          openTopology,
			refs:         []int32{2, -10, 1},
			wantIndices:  []uint32{3, 1, 2, 0, 4},
			wantElems:    []Element{{Mode: LineStripAdjacency, Offset: 0, Count: 5}},
			wantVertices: 5,
		},
		{
			name:         "closed loop reuses vertices",
			asm:          squareTopology,
			refs:         []int32{1, 20, 1},
			wantIndices:  []uint32{3, 0, 1, 2, 3, 0, 1},
			wantElems:    []Element{{Mode: LineStripAdjacency, Offset: 0, Count: 7}},
			wantVertices: 4,
		},
		{
			name:         "unknown edge emits node only",
			asm:          openTopology,
			refs:         []int32{1, 77, 2},
			wantIndices:  []uint32{3, 0, 1, 4},
			wantElems:    []Element{{Mode: LineStripAdjacency, Offset: 0, Count: 4}},
			wantVertices: 5,
		},
		{
			name:         "chained triples form one run",
			asm:          openTopology,
			refs:         []int32{1, 10, 2, 2, -10, 1},
			wantIndices:  []uint32{2, 0, 2, 1, 2, 0, 2},
			wantElems:    []Element{{Mode: LineStripAdjacency, Offset: 0, Count: 7}},
			wantVertices: 3,
		},
		{
			name:        "disconnected triples form two runs",
			asm:         openTopology,
			refs:        []int32{1, 10, 2, 1, 10, 2},
			wantIndices: []uint32{3, 0, 2, 1, 4, 5, 0, 2, 1, 6},
			wantElems: []Element{
				{Mode: LineStripAdjacency, Offset: 0, Count: 5},
				{Mode: LineStripAdjacency, Offset: 5, Count: 5},
			},
			wantVertices: 7,
		},
		{
			name:         "no references",
			asm:          openTopology,
			refs:         nil,
			wantIndices:  nil,
			wantElems:    nil,
			wantVertices: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.asm()
			elems, err := a.assembleLines(1, tt.refs)
			if err != nil {
				t.Fatalf("assembleLines() error = %v", err)
			}
			if !reflect.DeepEqual(elems, tt.wantElems) {
				t.Errorf("elements = %+v, want %+v", elems, tt.wantElems)
			}
			if !reflect.DeepEqual(a.indices, tt.wantIndices) {
				t.Errorf("indices = %v, want %v", a.indices, tt.wantIndices)
			}
			if got := a.vertices.Len(); got != tt.wantVertices {
				t.Errorf("vertex count = %d, want %d", got, tt.wantVertices)
			}
		})
	}
}

func TestAssembleLinesMirroredVertices(t *testing.T) {
	a := openTopology()
	if _, err := a.assembleLines(1, []int32{1, 10, 2}); err != nil {
		t.Fatalf("assembleLines() error = %v", err)
	}

	// 2*(0,0) - (10,0) and 2*(10,10) - (10,0)
	want := []Point{{-10, 0}, {10, 20}}
	for i, w := range want {
		if got := a.vertices.point(uint32(3 + i)); got != w {
			t.Errorf("adjacency vertex %d = %v, want %v", i, got, w)
		}
	}
}

func TestAssembleLinesUnknownNode(t *testing.T) {
	tests := []struct {
		name string
		refs []int32
		node int32
	}{
		{"start node", []int32{99, 10, 2}, 99},
		{"end node", []int32{1, 10, 98}, 98},
		{"negative id", []int32{-1, 10, 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openTopology().assembleLines(7, tt.refs)
			var unknown *ErrUnknownNode
			if !errors.As(err, &unknown) {
				t.Fatalf("assembleLines() error = %v, want *ErrUnknownNode", err)
			}
			if unknown.NodeID != tt.node || unknown.FeatureID != 7 {
				t.Errorf("error = %+v, want node %d of feature 7", unknown, tt.node)
			}
		})
	}
}

func TestLineCentre(t *testing.T) {
	t.Run("open line at half arc length", func(t *testing.T) {
		a := openTopology()
		elems, err := a.assembleLines(1, []int32{1, 10, 2})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := lineCentre(a.vertices, a.indices, elems), (Point{10, 0}); got != want {
			t.Errorf("lineCentre() = %v, want %v", got, want)
		}
	})

	t.Run("open line interpolates", func(t *testing.T) {
		a := newTestAssembler(
			[]nodeEntry{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 30, Y: 0}},
			[]edgeEntry{{ID: 10, Points: []float32{10, 0}}},
		)
		elems, err := a.assembleLines(1, []int32{1, 10, 2})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := lineCentre(a.vertices, a.indices, elems), (Point{15, 0}); got != want {
			t.Errorf("lineCentre() = %v, want %v", got, want)
		}
	})

	t.Run("closed loop centre of gravity", func(t *testing.T) {
		a := squareTopology()
		elems, err := a.assembleLines(1, []int32{1, 20, 1})
		if err != nil {
			t.Fatal(err)
		}
		// (0,0) (10,0) (10,10) (0,10) (0,0)
		if got, want := lineCentre(a.vertices, a.indices, elems), (Point{4, 4}); got != want {
			t.Errorf("lineCentre() = %v, want %v", got, want)
		}
	})

	t.Run("multi part centre of gravity", func(t *testing.T) {
		a := openTopology()
		elems, err := a.assembleLines(1, []int32{1, 10, 2, 1, 10, 2})
		if err != nil {
			t.Fatal(err)
		}
		// (0,0) (10,0) (10,10) twice
		want := Point{20.0 / 3, 10.0 / 3}
		got := lineCentre(a.vertices, a.indices, elems)
		if !approxEqual(got, want) {
			t.Errorf("lineCentre() = %v, want %v", got, want)
		}
	})

	t.Run("zero length", func(t *testing.T) {
		a := newTestAssembler([]nodeEntry{{ID: 1, X: 3, Y: 4}, {ID: 2, X: 3, Y: 4}}, nil)
		elems, err := a.assembleLines(1, []int32{1, 0, 2})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := lineCentre(a.vertices, a.indices, elems), (Point{3, 4}); got != want {
			t.Errorf("lineCentre() = %v, want %v", got, want)
		}
	})
}

func TestLineBBox(t *testing.T) {
	a := openTopology()
	elems, err := a.assembleLines(1, []int32{1, 10, 2})
	if err != nil {
		t.Fatal(err)
	}
	got := lineBBox(a.vertices, a.indices, elems)
	want := BBox{Min: Point{-10, 0}, Max: Point{10, 20}}
	if got != want {
		t.Errorf("lineBBox() = %v, want %v", got, want)
	}
}

func approxEqual(a, b Point) bool {
	const eps = 1e-9
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}
