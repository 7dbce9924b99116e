package alert

import (
	"fmt"
	"time"

	"geofence-alert-backend/internal/geo"
	"geofence-alert-backend/internal/model"
	"geofence-alert-backend/internal/snapshot"
)

// Kind identifies the direction of a geofence violation.
type Kind string

const (
	KindEnter Kind = "violation_enter"
	KindExit  Kind = "violation_exit"
)

// Violation is the decision produced by the rule engine for one vehicle,
// before it is formatted and handed to the sinks.
type Violation struct {
	VehicleID    snapshot.VehicleID
	VehicleName  string
	GeofenceID   int64
	GeofenceName string
	RuleType     snapshot.RuleType
	Kind         Kind
	Position     geo.Point
	At           time.Time
}

// Build packages a violation into the canonical alert record. The
// record is append-only; nothing mutates it after this point.
func Build(v Violation) *model.Alert {
	return &model.Alert{
		VehicleID:    string(v.VehicleID),
		VehicleName:  v.VehicleName,
		GeofenceID:   v.GeofenceID,
		GeofenceName: v.GeofenceName,
		AlertType:    string(v.Kind),
		Message:      message(v),
		Location:     fmt.Sprintf("%.4f, %.4f", v.Position.Lat, v.Position.Lng),
		TriggeredAt:  v.At,
	}
}

func message(v Violation) string {
	verb := "entered"
	if v.Kind == KindExit {
		verb = "left"
	}

	zone := "zone"
	switch v.RuleType {
	case snapshot.RuleForbidden:
		zone = "forbidden zone"
	case snapshot.RuleStayIn:
		zone = "stay-in zone"
	}

	return fmt.Sprintf("Vehicle %s %s %s %s", v.VehicleName, verb, zone, v.GeofenceName)
}
