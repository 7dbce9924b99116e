package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both coordinates are finite numbers.
func (p Point) Valid() bool {
	return finite(p.Lat) && finite(p.Lng)
}

// Distance returns the great-circle distance between two points in meters
// using the haversine formula.
func Distance(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// InCircle reports whether p lies within radiusMeters of center. The
// boundary is inclusive. Invalid input (non-finite coordinates or a
// non-positive radius) yields false.
func InCircle(p, center Point, radiusMeters float64) bool {
	if !p.Valid() || !ValidCircle(center, radiusMeters) {
		return false
	}
	return Distance(p, center) <= radiusMeters
}

// InPolygon reports whether p lies inside the ring using the even-odd
// rule. The ring is implicitly closed. A point exactly on an edge may
// resolve either way. Invalid rings yield false.
func InPolygon(p Point, ring []Point) bool {
	if !p.Valid() || !ValidRing(ring) {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		vi, vj := ring[i], ring[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ValidCircle reports whether a circle definition is evaluable.
func ValidCircle(center Point, radiusMeters float64) bool {
	return center.Valid() && finite(radiusMeters) && radiusMeters > 0
}

// ValidRing reports whether a polygon ring is evaluable: every vertex
// finite and at least three distinct vertices.
func ValidRing(ring []Point) bool {
	if len(ring) < 3 {
		return false
	}
	distinct := make(map[Point]struct{}, len(ring))
	for _, v := range ring {
		if !v.Valid() {
			return false
		}
		distinct[v] = struct{}{}
	}
	return len(distinct) >= 3
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
