package osenc

// Bounds represents a geographic bounding box in WGS-84 coordinates.
//
// Coordinates are in decimal degrees.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Union returns the smallest bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: min(b.MinLon, other.MinLon),
		MaxLon: max(b.MaxLon, other.MaxLon),
		MinLat: min(b.MinLat, other.MinLat),
		MaxLat: max(b.MaxLat, other.MaxLat),
	}
}

// OutlineBounds returns the box enclosing the four corners of an outline.
func OutlineBounds(o Outline) Bounds {
	c := o.Corners()
	b := Bounds{
		MinLon: c[0].Lon, MaxLon: c[0].Lon,
		MinLat: c[0].Lat, MaxLat: c[0].Lat,
	}
	for _, p := range c[1:] {
		b = b.Union(Bounds{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat})
	}
	return b
}

// BBoxOf returns the planar box of b under proj. Use it to turn a viewport
// into the query box of Chart.ObjectsInBounds.
func BBoxOf(b Bounds, proj Projection) BBox {
	if proj == nil {
		return BBox{Min: Point{X: b.MinLon, Y: b.MinLat}, Max: Point{X: b.MaxLon, Y: b.MaxLat}}
	}
	box := EmptyBBox()
	for _, c := range [][2]float64{
		{b.MinLon, b.MinLat}, {b.MaxLon, b.MinLat},
		{b.MaxLon, b.MaxLat}, {b.MinLon, b.MaxLat},
	} {
		x, y := proj.FromWGS84(c[0], c[1])
		box.Min.X = min(box.Min.X, x)
		box.Min.Y = min(box.Min.Y, y)
		box.Max.X = max(box.Max.X, x)
		box.Max.Y = max(box.Max.Y, y)
	}
	return box
}
