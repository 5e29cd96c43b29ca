package geo

import (
	"math"
	"testing"
)

func TestHaversineDistanceMeter(t *testing.T) {
	// one degree of longitude at the equator is ~111.19 km
	from := NewCoordinate(0, 0)
	to := NewCoordinate(0, 1)

	got := HaversineDistanceMeter(from, to)
	if math.Abs(got-111195) > 200 {
		t.Errorf("distance = %f m, want ~111195 m", got)
	}

	if HaversineDistanceMeter(from, from) != 0 {
		t.Error("distance to self should be zero")
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, 111.195)
	if math.Abs(lat) > 0.01 || math.Abs(lon-1.0) > 0.01 {
		t.Errorf("destination = (%f, %f), want ~(0, 1)", lat, lon)
	}
}

func TestPolylineFromCoords(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	// reference encoding from the polyline algorithm spec
	if got := PolylineFromCoords(coords); got != "_p~iF~ps|U_ulLnnqC_mqNvxq`@" {
		t.Errorf("polyline = %q", got)
	}
}

func TestPointLinePerpendicularDistance(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 1)
	snap := NewCoordinate(0.001, 0.5)

	got := PointLinePerpendicularDistance(a, b, snap)
	// ~111.19 m for 0.001 degrees of latitude
	if math.Abs(got-111.19) > 1.0 {
		t.Errorf("perpendicular distance = %f m, want ~111.19 m", got)
	}
}
