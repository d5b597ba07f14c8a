package parser

import "fmt"

// Chart is a decoded OSENC cell: the shared vertex and index buffers and
// the objects whose elements address them.
type Chart struct {
	Header Header
	// Vertices holds packed x/y pairs in projected planar units
	Vertices []float32
	// Indices holds the vertex indices of LineStripAdjacency elements
	Indices []uint32
	Objects []*Object
}

// VertexCount returns the number of vertices in the vertex buffer.
func (c *Chart) VertexCount() int {
	return len(c.Vertices) / 2
}

// Vertex returns vertex i.
func (c *Chart) Vertex(i uint32) Point {
	return Point{float64(c.Vertices[2*i]), float64(c.Vertices[2*i+1])}
}

// Validate checks that no object references an index or vertex outside
// the chart buffers.
func (c *Chart) Validate() error {
	for _, o := range c.Objects {
		if err := ValidateObject(o, len(c.Indices), c.VertexCount(), c.Indices); err != nil {
			return fmt.Errorf("chart %s: %w", c.Header.CellName, err)
		}
	}
	return nil
}

// CountByGeometry returns the number of objects per geometry type.
func (c *Chart) CountByGeometry() map[GeometryType]int {
	counts := make(map[GeometryType]int)
	for _, o := range c.Objects {
		if o.Geometry != nil {
			counts[o.Geometry.Type()]++
		}
	}
	return counts
}
