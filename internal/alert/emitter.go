package alert

import (
	"context"
	"log"

	"geofence-alert-backend/internal/model"
)

// Store persists alert records.
type Store interface {
	Save(ctx context.Context, a *model.Alert) error
}

// Notifier delivers an alert to subscribed push clients. Dispatch must
// not block the caller.
type Notifier interface {
	Dispatch(a model.Alert)
}

// Broadcaster pushes an alert onto the live feed. Broadcast must not
// block the caller.
type Broadcaster interface {
	Broadcast(a model.Alert)
}

// Emitter packages violations into alert records and fans them out to
// the persistence, push and live-feed sinks. A failure in one sink is
// logged and never prevents the others.
type Emitter struct {
	store       Store
	notifier    Notifier
	broadcaster Broadcaster
}

// NewEmitter creates an emitter. Any sink may be nil and is then
// skipped.
func NewEmitter(store Store, notifier Notifier, broadcaster Broadcaster) *Emitter {
	return &Emitter{store: store, notifier: notifier, broadcaster: broadcaster}
}

// Emit builds the alert record and hands it to each configured sink.
func (e *Emitter) Emit(ctx context.Context, v Violation) {
	rec := Build(v)
	log.Printf("Alert: %s (%s at %s)", rec.Message, rec.AlertType, rec.Location)

	if e.store != nil {
		if err := e.store.Save(ctx, rec); err != nil {
			log.Printf("Error persisting alert for vehicle %s: %v", rec.VehicleID, err)
		}
	}
	if e.notifier != nil {
		e.notifier.Dispatch(*rec)
	}
	if e.broadcaster != nil {
		e.broadcaster.Broadcast(*rec)
	}
}
