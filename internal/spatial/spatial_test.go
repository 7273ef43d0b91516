package spatial

import (
	"math"
	"testing"
)

var hyatt = Point{Lat: 33.6189, Lng: -117.8900}

func TestDistanceMilesZeroAndSymmetric(t *testing.T) {
	other := Point{Lat: 33.6405, Lng: -117.8443}

	if d := DistanceMiles(hyatt, hyatt); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}

	ab := DistanceMiles(hyatt, other)
	ba := DistanceMiles(other, hyatt)
	if ab != ba {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("distance = %v, want positive", ab)
	}
}

func TestDistanceMilesKnownValue(t *testing.T) {
	// One degree of latitude is ~69.1 miles on a 3959 mile sphere.
	a := Point{Lat: 33, Lng: -117}
	b := Point{Lat: 34, Lng: -117}
	want := 3959.0 * math.Pi / 180
	if got := DistanceMiles(a, b); math.Abs(got-want) > 1e-6 {
		t.Fatalf("DistanceMiles = %v, want %v", got, want)
	}
}

func TestDestinationPointRoundTrip(t *testing.T) {
	for _, ring := range DistanceRings {
		for _, bearing := range []float64{0, 45, 90, 180, 270, 333} {
			p := DestinationPoint(hyatt, ring.Meters, bearing)
			back := DistanceMeters(hyatt, p)
			if rel := math.Abs(back-ring.Meters) / ring.Meters; rel > 0.01 {
				t.Errorf("ring %s bearing %v: measured %v m, want %v m (rel err %v)",
					ring.Label, bearing, back, ring.Meters, rel)
			}
		}
	}
}

func TestBearing(t *testing.T) {
	north := DestinationPoint(hyatt, 1000, 0)
	if b := Bearing(hyatt, north); b > 0.5 && b < 359.5 {
		t.Errorf("bearing to north point = %v, want ~0", b)
	}
	east := DestinationPoint(hyatt, 1000, 90)
	if b := Bearing(hyatt, east); math.Abs(b-90) > 0.5 {
		t.Errorf("bearing to east point = %v, want ~90", b)
	}
}

func TestRingLabelPosition(t *testing.T) {
	half, ok := RingByMiles(0.5)
	if !ok {
		t.Fatal("0.5 mile ring missing")
	}
	if half.Meters != 805 || half.LabelAngle != 90 {
		t.Fatalf("unexpected 0.5 mile ring: %+v", half)
	}

	pos := half.LabelPosition(hyatt)
	// Due east: latitude barely moves, longitude grows.
	if math.Abs(pos.Lat-hyatt.Lat) > 1e-4 {
		t.Errorf("label lat = %v, want ~%v", pos.Lat, hyatt.Lat)
	}
	if pos.Lng <= hyatt.Lng {
		t.Errorf("label lng = %v, want east of %v", pos.Lng, hyatt.Lng)
	}

	if _, ok := RingByMiles(5); ok {
		t.Error("RingByMiles(5) found a ring")
	}
}

func TestRegionContains(t *testing.T) {
	square := []Point{
		{Lat: 33.60, Lng: -117.91},
		{Lat: 33.60, Lng: -117.87},
		{Lat: 33.64, Lng: -117.87},
		{Lat: 33.64, Lng: -117.91},
	}

	for _, verts := range [][]Point{square, reversed(square)} {
		r := NewRegion("box", verts)
		if !r.Contains(hyatt) {
			t.Errorf("region should contain the reference point")
		}
		if r.Contains(Point{Lat: 33.70, Lng: -117.80}) {
			t.Errorf("region should not contain a far point")
		}
	}

	c := NewRegion("box", square).Centroid()
	if math.Abs(c.Lat-33.62) > 1e-9 || math.Abs(c.Lng+117.89) > 1e-9 {
		t.Errorf("centroid = %+v", c)
	}
}

func TestBoundingBox(t *testing.T) {
	s, w, n, e := BoundingBox(hyatt, 3)
	if !(s < hyatt.Lat && hyatt.Lat < n) {
		t.Errorf("latitude bounds %v..%v do not straddle center", s, n)
	}
	if !(w < hyatt.Lng && hyatt.Lng < e) {
		t.Errorf("longitude bounds %v..%v do not straddle center", w, e)
	}
	if d := DistanceMiles(hyatt, Point{Lat: n, Lng: hyatt.Lng}); math.Abs(d-3) > 0.03 {
		t.Errorf("north edge is %v miles away, want ~3", d)
	}
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
