package osenc

import (
	"math"
	"testing"
)

func TestBounds(t *testing.T) {
	b := Bounds{MinLon: 17, MaxLon: 18, MinLat: 59, MaxLat: 59.5}

	if !b.Contains(17.5, 59.2) || b.Contains(16.9, 59.2) {
		t.Error("Contains() mismatch")
	}

	tests := []struct {
		name  string
		other Bounds
		want  bool
	}{
		{"inside", Bounds{MinLon: 17.2, MaxLon: 17.3, MinLat: 59.1, MaxLat: 59.2}, true},
		{"overlap", Bounds{MinLon: 17.9, MaxLon: 19, MinLat: 59.4, MaxLat: 60}, true},
		{"touching", Bounds{MinLon: 18, MaxLon: 19, MinLat: 59, MaxLat: 59.5}, true},
		{"east", Bounds{MinLon: 18.1, MaxLon: 19, MinLat: 59, MaxLat: 59.5}, false},
		{"north", Bounds{MinLon: 17, MaxLon: 18, MinLat: 60, MaxLat: 61}, false},
	}
	for _, tt := range tests {
		if got := b.Intersects(tt.other); got != tt.want {
			t.Errorf("Intersects(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	e := b.Expand(1)
	if e != (Bounds{MinLon: 16, MaxLon: 19, MinLat: 58, MaxLat: 60.5}) {
		t.Errorf("Expand(1) = %+v", e)
	}

	u := b.Union(Bounds{MinLon: 10, MaxLon: 11, MinLat: 60, MaxLat: 61})
	if u != (Bounds{MinLon: 10, MaxLon: 18, MinLat: 59, MaxLat: 61}) {
		t.Errorf("Union() = %+v", u)
	}
}

func TestOutlineBounds(t *testing.T) {
	o := Outline{
		SW: LatLon{Lon: 17, Lat: 59},
		SE: LatLon{Lon: 18.1, Lat: 58.9},
		NE: LatLon{Lon: 18, Lat: 59.5},
		NW: LatLon{Lon: 16.9, Lat: 59.6},
	}
	want := Bounds{MinLon: 16.9, MaxLon: 18.1, MinLat: 58.9, MaxLat: 59.6}
	if got := OutlineBounds(o); got != want {
		t.Errorf("OutlineBounds() = %+v, want %+v", got, want)
	}
}

func TestBBoxOf(t *testing.T) {
	b := Bounds{MinLon: 17, MaxLon: 18, MinLat: 59, MaxLat: 59.5}

	got := BBoxOf(b, nil)
	if got != (BBox{Min: Point{X: 17, Y: 59}, Max: Point{X: 18, Y: 59.5}}) {
		t.Errorf("BBoxOf(nil) = %+v", got)
	}

	proj := NewSimpleMercator(17, 59)
	box := BBoxOf(b, proj)
	if box.Min.X != 0 || math.Abs(box.Min.Y) > 1e-6 {
		t.Errorf("BBoxOf(mercator).Min = %+v, want origin", box.Min)
	}
	if box.Max.X <= 0 || box.Max.Y <= 0 {
		t.Errorf("BBoxOf(mercator).Max = %+v, want positive", box.Max)
	}
}

func TestSimpleMercator(t *testing.T) {
	m := NewSimpleMercator(17, 59)

	x, y := m.FromWGS84(17, 59)
	if x != 0 || math.Abs(y) > 1e-6 {
		t.Errorf("FromWGS84(ref) = %f, %f, want origin", x, y)
	}

	// one degree of longitude at the reference is R*pi/180 metres
	x, _ = m.FromWGS84(18, 59)
	if want := earthRadius * math.Pi / 180; math.Abs(x-want) > 1e-6 {
		t.Errorf("FromWGS84(18, 59) x = %f, want %f", x, want)
	}

	points := [][2]float64{{17.5, 59.25}, {-70.5, 42.1}, {179, -60}}
	for _, p := range points {
		x, y := m.FromWGS84(p[0], p[1])
		lon, lat := m.ToWGS84(x, y)
		if math.Abs(lon-p[0]) > 1e-9 || math.Abs(lat-p[1]) > 1e-9 {
			t.Errorf("round trip %v = %f, %f", p, lon, lat)
		}
	}
}
