package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Jakarta city center, used as a realistic continental-latitude anchor.
var jakarta = Point{Lat: -6.2088, Lng: 106.8456}

func TestDistance(t *testing.T) {
	// A point one degree of latitude north is roughly 111.2 km away.
	north := Point{Lat: jakarta.Lat + 1, Lng: jakarta.Lng}
	d := Distance(jakarta, north)
	assert.InDelta(t, 111195, d, 200)

	assert.Zero(t, Distance(jakarta, jakarta))
}

func TestInCircle(t *testing.T) {
	const radius = 500.0

	testCases := []struct {
		name     string
		point    Point
		expected bool
	}{
		{"center is contained", jakarta, true},
		{"point just inside", offsetNorth(jakarta, radius-1), true},
		{"boundary is inclusive", offsetNorth(jakarta, radius), true},
		{"one meter past the boundary", offsetNorth(jakarta, radius+1), false},
		{"far outside", offsetNorth(jakarta, 100000), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InCircle(tc.point, jakarta, radius))
		})
	}
}

func TestInCircle_InvalidGeometry(t *testing.T) {
	assert.False(t, InCircle(jakarta, jakarta, 0))
	assert.False(t, InCircle(jakarta, jakarta, -10))
	assert.False(t, InCircle(jakarta, Point{Lat: math.NaN(), Lng: 0}, 500))
	assert.False(t, InCircle(Point{Lat: math.Inf(1), Lng: 0}, jakarta, 500))
}

func TestInPolygon(t *testing.T) {
	// A convex quadrilateral around the anchor point.
	ring := []Point{
		{Lat: -6.20, Lng: 106.84},
		{Lat: -6.20, Lng: 106.86},
		{Lat: -6.22, Lng: 106.86},
		{Lat: -6.22, Lng: 106.84},
	}

	// Centroid of a convex polygon is contained.
	assert.True(t, InPolygon(Point{Lat: -6.21, Lng: 106.85}, ring))

	// Points far outside the bounding box are not.
	assert.False(t, InPolygon(Point{Lat: -7.0, Lng: 106.85}, ring))
	assert.False(t, InPolygon(Point{Lat: -6.21, Lng: 108.0}, ring))
}

func TestInPolygon_InvalidRing(t *testing.T) {
	p := Point{Lat: -6.21, Lng: 106.85}

	assert.False(t, InPolygon(p, nil))
	assert.False(t, InPolygon(p, []Point{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}))

	// Three vertices but only two distinct points.
	degenerate := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 1, Lng: 1},
		{Lat: 0, Lng: 0},
	}
	assert.False(t, InPolygon(p, degenerate))

	withNaN := []Point{
		{Lat: -6.20, Lng: 106.84},
		{Lat: math.NaN(), Lng: 106.86},
		{Lat: -6.22, Lng: 106.85},
	}
	assert.False(t, InPolygon(p, withNaN))
}

// offsetNorth returns a point the given number of meters due north of p.
func offsetNorth(p Point, meters float64) Point {
	return Point{Lat: p.Lat + meters/111195.0, Lng: p.Lng}
}
