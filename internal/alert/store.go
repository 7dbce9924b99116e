package alert

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"geofence-alert-backend/internal/model"
)

// GormStore is the GORM-backed alert persistence sink.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed alert store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Save appends one alert record.
func (s *GormStore) Save(ctx context.Context, a *model.Alert) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create alert record for vehicle %s: %w", a.VehicleID, err)
	}
	return nil
}

// Recent returns the newest alerts, optionally filtered by vehicle.
func (s *GormStore) Recent(ctx context.Context, vehicleID string, limit int) ([]model.Alert, error) {
	q := s.db.WithContext(ctx).Order("triggered_at DESC").Limit(limit)
	if vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}

	var alerts []model.Alert
	if err := q.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	return alerts, nil
}
