package parser

// assembleArea builds the boundary elements of an area through
// assembleLines, then appends the triangle patches to the vertex buffer.
// Triangle element offsets are relative to the returned vertexOffset.
func (a *assembler) assembleArea(featureID uint32, refs []int32, patches []patch) (lines, triangles []Element, vertexOffset int, err error) {
	lines, err = a.assembleLines(featureID, refs)
	if err != nil {
		return nil, nil, 0, err
	}

	vertexOffset = a.vertices.Len()
	offset := 0
	for _, p := range patches {
		a.vertices.addPairs(p.Vertices)
		n := len(p.Vertices) / 2
		triangles = append(triangles, Element{Mode: p.Mode, Offset: offset, Count: n})
		offset += n
	}
	return lines, triangles, vertexOffset, nil
}

// areaCentre returns the area-weighted centroid of the triangle patches.
// ok is false when the patches enclose no area.
func areaCentre(vb *vertexBuffer, triangles []Element, vertexOffset int) (c Point, ok bool) {
	var area, sx, sy float64
	add := func(i0, i1, i2 int) {
		p0 := vb.point(uint32(vertexOffset + i0))
		p1 := vb.point(uint32(vertexOffset + i1))
		p2 := vb.point(uint32(vertexOffset + i2))
		da := (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
		if da < 0 {
			da = -da
		}
		area += da
		sx += da / 3 * (p0.X + p1.X + p2.X)
		sy += da / 3 * (p0.Y + p1.Y + p2.Y)
	}

	for _, e := range triangles {
		switch e.Mode {
		case Triangles:
			for i := 0; i+2 < e.Count; i += 3 {
				add(e.Offset+i, e.Offset+i+1, e.Offset+i+2)
			}
		case TriangleStrip:
			for i := 0; i+2 < e.Count; i++ {
				add(e.Offset+i, e.Offset+i+1, e.Offset+i+2)
			}
		case TriangleFan:
			for i := 1; i+1 < e.Count; i++ {
				add(e.Offset, e.Offset+i, e.Offset+i+1)
			}
		}
	}

	if area == 0 {
		return Point{}, false
	}
	return Point{sx / area, sy / area}, true
}
