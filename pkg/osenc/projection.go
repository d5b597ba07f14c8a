package osenc

import "math"

// earthRadius is the WGS-84 semi-major axis in metres.
const earthRadius = 6378137.0

// SimpleMercator is a spherical Mercator projection centred on a reference
// position. Output is in metres, with the reference at the origin.
//
// Example:
//
//	b := osenc.OutlineBounds(outline)
//	proj := osenc.NewSimpleMercator((b.MinLon+b.MaxLon)/2, (b.MinLat+b.MaxLat)/2)
//	chart, err := parser.ParseWithOptions(path, osenc.ParseOptions{Projection: proj})
type SimpleMercator struct {
	RefLon, RefLat float64
	refY           float64
}

// NewSimpleMercator returns a projection with its origin at (lon, lat).
func NewSimpleMercator(lon, lat float64) *SimpleMercator {
	return &SimpleMercator{RefLon: lon, RefLat: lat, refY: mercatorY(lat)}
}

// FromWGS84 projects a WGS-84 position to planar metres.
func (m *SimpleMercator) FromWGS84(lon, lat float64) (x, y float64) {
	x = earthRadius * (lon - m.RefLon) * math.Pi / 180
	y = mercatorY(lat) - m.refY
	return x, y
}

// ToWGS84 is the inverse of FromWGS84.
func (m *SimpleMercator) ToWGS84(x, y float64) (lon, lat float64) {
	lon = m.RefLon + x/earthRadius*180/math.Pi
	lat = math.Atan(math.Sinh((y+m.refY)/earthRadius)) * 180 / math.Pi
	return lon, lat
}

func mercatorY(lat float64) float64 {
	phi := lat * math.Pi / 180
	return earthRadius * math.Log(math.Tan(math.Pi/4+phi/2))
}
