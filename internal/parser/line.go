package parser

// assembler turns pending line and area references into draw elements,
// appending to the shared vertex and index buffers.
type assembler struct {
	vertices *vertexBuffer
	tables   *geometryTables
	indices  []uint32
}

// assembleLines builds one LineStripAdjacency element per run of refs.
//
// refs is a flat list of (start node, signed edge, end node) triples. A run
// continues while a triple starts at the node the previous one ended at.
// Each element is laid out as
//
//	adjacency, start, edge vertices..., [start, edge...], end, adjacency
//
// The leading slot is reserved first and filled once the run is known. A
// closed run reuses its own vertices as adjacency; an open run gets two
// mirrored vertices appended to the vertex buffer.
func (a *assembler) assembleLines(featureID uint32, refs []int32) ([]Element, error) {
	cnt := len(refs) / 3
	var elems []Element

	for i := 0; i < cnt; {
		adj := len(a.indices)
		a.indices = append(a.indices, 0)

		start := i
		for i < cnt && (i == start || refs[3*i] == refs[3*i-1]) {
			node, ok := a.tables.node(refs[3*i])
			if !ok {
				return nil, &ErrUnknownNode{FeatureID: featureID, NodeID: refs[3*i]}
			}
			a.indices = append(a.indices, node)
			if e, reversed, ok := a.tables.edge(refs[3*i+1]); ok {
				a.indices = e.appendTo(a.indices, reversed)
			}
			i++
		}

		last, ok := a.tables.node(refs[3*i-1])
		if !ok {
			return nil, &ErrUnknownNode{FeatureID: featureID, NodeID: refs[3*i-1]}
		}
		a.closeRun(adj, last)

		elems = append(elems, Element{
			Mode:   LineStripAdjacency,
			Offset: adj,
			Count:  len(a.indices) - adj,
		})
	}
	return elems, nil
}

// closeRun appends the end node and fills both adjacency slots of the run
// whose reserved slot is at adj.
func (a *assembler) closeRun(adj int, last uint32) {
	first := a.indices[adj+1]
	prev := a.indices[len(a.indices)-1]
	next := last
	if len(a.indices) > adj+2 {
		next = a.indices[adj+2]
	}

	if last == first {
		a.indices[adj] = prev
		a.indices = append(a.indices, last, next)
		return
	}
	a.indices[adj] = a.vertices.mirror(first, next)
	a.indices = append(a.indices, last)
	a.indices = append(a.indices, a.vertices.mirror(last, prev))
}
