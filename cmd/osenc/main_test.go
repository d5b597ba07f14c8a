package main

import (
	"math"
	"testing"

	"github.com/beetlebugorg/osenc/pkg/osenc"
)

func TestParseBounds(t *testing.T) {
	tests := []struct {
		in      string
		want    osenc.Bounds
		wantErr bool
	}{
		{"17,59,18,59.5", osenc.Bounds{MinLon: 17, MinLat: 59, MaxLon: 18, MaxLat: 59.5}, false},
		{" -71.5, 42 , -71, 42.5", osenc.Bounds{MinLon: -71.5, MinLat: 42, MaxLon: -71, MaxLat: 42.5}, false},
		{"17,59,18", osenc.Bounds{}, true},
		{"a,b,c,d", osenc.Bounds{}, true},
	}

	for _, tt := range tests {
		got, err := parseBounds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseBounds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseBounds(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		attr osenc.Attribute
		want string
	}{
		{osenc.Attribute{Type: 0, Int: 42}, "42"},
		{osenc.Attribute{Type: 1, Ints: []int{3, 1}, String: "3,1"}, "3,1"},
		{osenc.Attribute{Type: 2, Real: 5.5}, "5.5"},
		{osenc.Attribute{Type: 3, Reals: []float64{1.5, 2}}, "1.5,2"},
		{osenc.Attribute{Type: 4, String: "Skär"}, `"Skär"`},
		{osenc.Attribute{Type: 5}, "(none)"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.attr); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.attr, got, tt.want)
		}
	}
}

func TestFormatAttributes(t *testing.T) {
	o := &osenc.Object{Attributes: map[uint16]osenc.Attribute{
		116: {Type: 4, String: "Buoy"},
		75:  {Type: 1, Ints: []int{3}},
	}}
	got := formatAttributes(o)
	if len(got) != 2 || got[0] != "COLOUR=3" || got[1] != `OBJNAM="Buoy"` {
		t.Errorf("formatAttributes() = %v", got)
	}
}

func TestCellMercator(t *testing.T) {
	o := osenc.Outline{
		SW: osenc.LatLon{Lon: 17, Lat: 59},
		SE: osenc.LatLon{Lon: 18, Lat: 59},
		NE: osenc.LatLon{Lon: 18, Lat: 59.5},
		NW: osenc.LatLon{Lon: 17, Lat: 59.5},
	}
	m := cellMercator(o)
	if m.RefLon != 17.5 || m.RefLat != 59.25 {
		t.Errorf("reference = %v, %v, want 17.5, 59.25", m.RefLon, m.RefLat)
	}

	// corners sit symmetrically east and west of the origin
	xw, _ := m.FromWGS84(17, 59.25)
	xe, y := m.FromWGS84(18, 59.25)
	if math.Abs(xw+xe) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("FromWGS84 west %v east %v y %v", xw, xe, y)
	}
}
