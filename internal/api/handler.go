package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/live"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	db      *gorm.DB
	alerts  *alert.GormStore
	webpush *webpush.Options
	hub     *live.Hub
}

// NewHandler creates a new API handler.
func NewHandler(db *gorm.DB, alerts *alert.GormStore, webpushOptions *webpush.Options, hub *live.Hub) *Handler {
	return &Handler{
		db:      db,
		alerts:  alerts,
		webpush: webpushOptions,
		hub:     hub,
	}
}
