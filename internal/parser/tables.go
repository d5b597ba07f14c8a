package parser

import "math"

// vertexBuffer is the shared, append-only buffer of float32 x/y pairs.
// Vertex indices are assigned from its current length and never change.
type vertexBuffer struct {
	data []float32
}

// Len returns the number of vertices.
func (vb *vertexBuffer) Len() int {
	return len(vb.data) / 2
}

// add appends one vertex and returns its index.
func (vb *vertexBuffer) add(x, y float32) uint32 {
	idx := uint32(vb.Len())
	vb.data = append(vb.data, x, y)
	return idx
}

// addPairs appends packed x/y pairs and returns the index of the first.
func (vb *vertexBuffer) addPairs(pairs []float32) uint32 {
	idx := uint32(vb.Len())
	vb.data = append(vb.data, pairs...)
	return idx
}

// at returns vertex i.
func (vb *vertexBuffer) at(i uint32) (float32, float32) {
	return vb.data[2*i], vb.data[2*i+1]
}

// point returns vertex i widened to float64.
func (vb *vertexBuffer) point(i uint32) Point {
	x, y := vb.at(i)
	return Point{float64(x), float64(y)}
}

// mirror appends 2*base - next and returns the new vertex index. The
// arithmetic stays in float32, the precision of the stored vertices.
func (vb *vertexBuffer) mirror(base, next uint32) uint32 {
	x1, y1 := vb.at(base)
	x2, y2 := vb.at(next)
	return vb.add(2*x1-x2, 2*y1-y2)
}

// edgeRange is the contiguous span of vertex indices holding one edge.
type edgeRange struct {
	first uint32
	count uint32
}

// appendTo appends the edge's vertex indices to dst, last to first when
// reversed.
func (e edgeRange) appendTo(dst []uint32, reversed bool) []uint32 {
	if reversed {
		for i := e.count; i > 0; i-- {
			dst = append(dst, e.first+i-1)
		}
		return dst
	}
	for i := uint32(0); i < e.count; i++ {
		dst = append(dst, e.first+i)
	}
	return dst
}

// geometryTables maps connected-node ids and edge ids onto the vertex buffer.
// Node and edge tables may arrive anywhere in the stream; lookups only
// happen once the stream has been consumed.
type geometryTables struct {
	vertices *vertexBuffer
	nodes    map[uint32]uint32
	edges    map[uint32]edgeRange
}

func newGeometryTables(vb *vertexBuffer) *geometryTables {
	return &geometryTables{
		vertices: vb,
		nodes:    make(map[uint32]uint32),
		edges:    make(map[uint32]edgeRange),
	}
}

// addNodes appends one vertex per connected node, in table order. A node id
// seen again is remapped to its newest vertex.
func (t *geometryTables) addNodes(r nodeTableRecord) {
	for _, n := range r.Nodes {
		t.nodes[n.ID] = t.vertices.add(n.X, n.Y)
	}
}

// addEdges appends the polyline vertices of every edge, in table order.
func (t *geometryTables) addEdges(r edgeTableRecord) {
	for _, e := range r.Edges {
		first := t.vertices.addPairs(e.Points)
		t.edges[e.ID] = edgeRange{first: first, count: uint32(len(e.Points) / 2)}
	}
}

// node resolves a connected-node reference.
func (t *geometryTables) node(id int32) (uint32, bool) {
	if id < 0 {
		return 0, false
	}
	idx, ok := t.nodes[uint32(id)]
	return idx, ok
}

// edge resolves a signed edge reference. reversed is true for negative refs.
func (t *geometryTables) edge(ref int32) (r edgeRange, reversed, ok bool) {
	abs := int64(ref)
	if abs < 0 {
		abs = -abs
	}
	if abs > math.MaxUint32 {
		return edgeRange{}, false, false
	}
	r, ok = t.edges[uint32(abs)]
	return r, ref < 0, ok
}
