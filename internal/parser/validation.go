package parser

import (
	"fmt"
)

// ValidateCoordinate validates a single coordinate pair
// WGS-84 positions must be within valid geographic bounds
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateObject checks that every element of o addresses indices and
// vertices inside the given buffer sizes.
func ValidateObject(o *Object, indexCount, vertexCount int, indices []uint32) error {
	if o == nil {
		return fmt.Errorf("object is nil")
	}
	if o.Geometry == nil {
		return fmt.Errorf("object %d has no geometry", o.ID)
	}

	checkLines := func(elems []Element) error {
		for _, e := range elems {
			if e.Offset < 0 || e.Offset+e.Count > indexCount {
				return &ErrDanglingIndex{FeatureID: o.ID, Index: e.Offset + e.Count - 1, Limit: indexCount}
			}
			for _, idx := range indices[e.Offset : e.Offset+e.Count] {
				if int(idx) >= vertexCount {
					return &ErrDanglingIndex{FeatureID: o.ID, Index: int(idx), Limit: vertexCount}
				}
			}
		}
		return nil
	}

	switch g := o.Geometry.(type) {
	case *LineGeometry:
		return checkLines(g.Elements)
	case *AreaGeometry:
		if err := checkLines(g.Lines); err != nil {
			return err
		}
		for _, e := range g.Triangles {
			if end := g.VertexOffset + e.Offset + e.Count; end > vertexCount {
				return &ErrDanglingIndex{FeatureID: o.ID, Index: end - 1, Limit: vertexCount}
			}
		}
	}
	return nil
}
