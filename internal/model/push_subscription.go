package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint    string    `gorm:"primaryKey"`
	P256DH      string    `gorm:"column:p256dh;not null"`
	Auth        string    `gorm:"not null"`
	AllVehicles bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`

	// Associations
	Vehicles []SubscriptionVehicle `gorm:"foreignKey:PushSubscriptionEndpoint;constraint:OnDelete:CASCADE"`
}

// SubscriptionVehicle maps a subscription to one vehicle of interest.
// Vehicles live in the external management system, so only the id is
// stored here.
type SubscriptionVehicle struct {
	PushSubscriptionEndpoint string `gorm:"primaryKey"`
	VehicleID                string `gorm:"primaryKey;index;size:64"`
}
