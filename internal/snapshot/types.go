package snapshot

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"geofence-alert-backend/internal/geo"
)

// VehicleID is the canonical vehicle identifier. Upstream systems are
// inconsistent about whether ids arrive as JSON strings or numbers, so
// the id is normalized to a string once, at the boundary.
type VehicleID string

// UnmarshalJSON accepts both `"42"` and `42`.
func (v *VehicleID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = VehicleID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = VehicleID(n.String())
	return nil
}

// RuleType governs which containment transitions count as violations.
type RuleType string

const (
	RuleForbidden RuleType = "FORBIDDEN"
	RuleStayIn    RuleType = "STAY_IN"
	RuleStandard  RuleType = "STANDARD"
)

// GeofenceKind distinguishes the supported geometry shapes.
type GeofenceKind string

const (
	KindCircle  GeofenceKind = "circle"
	KindPolygon GeofenceKind = "polygon"
)

const statusActive = "active"

// Position is a raw position sample as received from upstream. The
// timestamp stays a string until parsed so one malformed sample cannot
// fail the whole roster decode.
type Position struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp string  `json:"timestamp"`
}

// ParseTimestamp returns the sample time, or an error if it is missing
// or not RFC3339.
func (p *Position) ParseTimestamp() (time.Time, error) {
	return time.Parse(time.RFC3339, p.Timestamp)
}

// Point returns the sample coordinate.
func (p *Position) Point() geo.Point {
	return geo.Point{Lat: p.Lat, Lng: p.Lng}
}

// Vehicle is one entry of the fleet roster.
type Vehicle struct {
	ID                 VehicleID `json:"vehicleId"`
	Name               string    `json:"name"`
	AssignedGeofenceID *int64    `json:"assignedGeofenceId"`
	Online             bool      `json:"online"`
	LastPosition       *Position `json:"lastPosition"`
}

// Label returns the vehicle name, falling back to the id.
func (v *Vehicle) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return string(v.ID)
}

// Geometry carries either a circle or a polygon definition, depending on
// the owning geofence's kind. Coordinates are [lng, lat] pairs.
type Geometry struct {
	Center       []float64   `json:"center,omitempty"`
	RadiusMeters float64     `json:"radiusMeters,omitempty"`
	Ring         [][]float64 `json:"ring,omitempty"`
}

// Geofence is one entry of the geofence roster.
type Geofence struct {
	ID       int64        `json:"geofenceId"`
	Name     string       `json:"name"`
	RuleType RuleType     `json:"ruleType"`
	Status   string       `json:"status"`
	Kind     GeofenceKind `json:"kind"`
	Geometry Geometry     `json:"geometry"`
}

// Active reports whether the geofence participates in evaluation.
func (g *Geofence) Active() bool {
	return g.Status == statusActive
}

// ValidGeometry reports whether the geofence's geometry is evaluable.
func (g *Geofence) ValidGeometry() bool {
	switch g.Kind {
	case KindCircle:
		center, ok := g.center()
		return ok && geo.ValidCircle(center, g.Geometry.RadiusMeters)
	case KindPolygon:
		return geo.ValidRing(g.ring())
	default:
		return false
	}
}

// Contains reports whether the point lies inside the geofence. Invalid
// geometry yields false rather than an error.
func (g *Geofence) Contains(p geo.Point) bool {
	switch g.Kind {
	case KindCircle:
		center, ok := g.center()
		if !ok {
			return false
		}
		return geo.InCircle(p, center, g.Geometry.RadiusMeters)
	case KindPolygon:
		return geo.InPolygon(p, g.ring())
	default:
		return false
	}
}

// Label returns the geofence name, falling back to the id.
func (g *Geofence) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return strconv.FormatInt(g.ID, 10)
}

func (g *Geofence) center() (geo.Point, bool) {
	if len(g.Geometry.Center) != 2 {
		return geo.Point{}, false
	}
	return geo.Point{Lat: g.Geometry.Center[1], Lng: g.Geometry.Center[0]}, true
}

func (g *Geofence) ring() []geo.Point {
	ring := make([]geo.Point, 0, len(g.Geometry.Ring))
	for _, pair := range g.Geometry.Ring {
		if len(pair) != 2 {
			return nil
		}
		ring = append(ring, geo.Point{Lat: pair[1], Lng: pair[0]})
	}
	return ring
}

// Snapshot bundles one tick's view of the external collaborators.
type Snapshot struct {
	Vehicles  []Vehicle
	Geofences []Geofence
}
