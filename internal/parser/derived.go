package parser

import "math"

// lineBBox covers every index of every element, adjacency slots included.
func lineBBox(vb *vertexBuffer, indices []uint32, elems []Element) BBox {
	b := EmptyBBox()
	for _, e := range elems {
		for _, idx := range indices[e.Offset : e.Offset+e.Count] {
			p := vb.point(idx)
			b.extend(p.X, p.Y)
		}
	}
	return b
}

// patchBBox covers the vertices of triangle elements.
func patchBBox(vb *vertexBuffer, triangles []Element, vertexOffset int) BBox {
	b := EmptyBBox()
	for _, e := range triangles {
		for i := 0; i < e.Count; i++ {
			p := vb.point(uint32(vertexOffset + e.Offset + i))
			b.extend(p.X, p.Y)
		}
	}
	return b
}

// lineCentre returns the label point of a line geometry.
//
// Several elements or a closed loop: mean of the vertices of all elements,
// skipping one adjacency slot at each end. A single open line: the point at
// half of its arc length.
func lineCentre(vb *vertexBuffer, indices []uint32, elems []Element) Point {
	if len(elems) == 0 || elems[0].Count < 3 {
		return Point{}
	}
	first := elems[0].Offset + 1
	last := first + elems[0].Count - 3

	if len(elems) > 1 || indices[first] == indices[last] {
		var sx, sy float64
		n := 0
		for _, e := range elems {
			if e.Count < 3 {
				continue
			}
			f := e.Offset + 1
			l := f + e.Count - 3
			for i := f; i <= l; i++ {
				p := vb.point(indices[i])
				sx += p.X
				sy += p.Y
			}
			n += e.Count - 2
		}
		return Point{sx / float64(n), sy / float64(n)}
	}

	lengths := make([]float64, 0, last-first)
	total := 0.0
	for i := first; i < last; i++ {
		p0, p1 := vb.point(indices[i]), vb.point(indices[i+1])
		l := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
		lengths = append(lengths, l)
		total += l
	}
	half := total / 2

	run := 0.0
	k := 0
	for k < len(lengths) && run < half {
		run += lengths[k]
		k++
	}
	if k == 0 {
		return vb.point(indices[first])
	}

	p0, p1 := vb.point(indices[first+k-1]), vb.point(indices[first+k])
	t := (run - half) / lengths[k-1]
	return Point{p1.X - t*(p1.X-p0.X), p1.Y - t*(p1.Y-p0.Y)}
}
