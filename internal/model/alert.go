package model

import "time"

// Alert is an emitted geofence violation record. Rows are append-only;
// the engine creates them and never updates or deletes.
type Alert struct {
	ID           int64     `gorm:"autoIncrement;primaryKey" json:"id"`
	VehicleID    string    `gorm:"index;size:64;not null" json:"vehicleId"`
	VehicleName  string    `gorm:"size:256" json:"vehicleName"`
	GeofenceID   int64     `gorm:"index" json:"geofenceId"`
	GeofenceName string    `gorm:"size:256" json:"geofenceName"`
	AlertType    string    `gorm:"size:32;not null" json:"alertType"`
	Message      string    `gorm:"not null" json:"message"`
	Location     string    `gorm:"size:64;not null" json:"location"`
	TriggeredAt  time.Time `gorm:"index;not null" json:"timestamp"`
	CreatedAt    time.Time `json:"-"`
}
