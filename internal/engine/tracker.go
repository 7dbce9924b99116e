package engine

import (
	"sync"
	"time"

	"geofence-alert-backend/internal/geo"
	"geofence-alert-backend/internal/snapshot"
)

// history is the engine-owned per-vehicle state: the last two known
// positions and the containment result of the previous evaluation.
type history struct {
	previousPosition *geo.Point
	currentPosition  *geo.Point
	wasInside        bool
	geofenceID       int64
	lastEvaluatedAt  time.Time
}

// Tracker maintains position history for every vehicle the engine has
// seen. Entries are created on first sight and pruned only by age.
type Tracker struct {
	mu      sync.Mutex
	entries map[snapshot.VehicleID]*history
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[snapshot.VehicleID]*history)}
}

// Update records a fresh position for the vehicle and returns the
// containment pair (previous, current) relative to the given geofence.
//
// On the first observation of a vehicle, and whenever the vehicle's
// geofence assignment has changed since the last evaluation, the
// previous containment is reported equal to the current one so that a
// single observation never fires a transition.
func (t *Tracker) Update(id snapshot.VehicleID, pos geo.Point, fence *snapshot.Geofence, now time.Time) (wasInside, isInside bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	isInside = fence.Contains(pos)

	entry, ok := t.entries[id]
	if !ok || entry.geofenceID != fence.ID {
		// No prior knowledge relative to this geofence.
		t.entries[id] = &history{
			currentPosition: &pos,
			wasInside:       isInside,
			geofenceID:      fence.ID,
			lastEvaluatedAt: now,
		}
		return isInside, isInside
	}

	wasInside = entry.wasInside

	entry.previousPosition = entry.currentPosition
	entry.currentPosition = &pos
	entry.wasInside = isInside
	entry.lastEvaluatedAt = now

	return wasInside, isInside
}

// PruneBefore drops entries last evaluated before the cutoff and
// returns how many were removed. Vehicles removed from the fleet stop
// being updated, so their entries age out here.
func (t *Tracker) PruneBefore(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, entry := range t.entries {
		if entry.lastEvaluatedAt.Before(cutoff) {
			delete(t.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked vehicles.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
