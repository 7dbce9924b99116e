package engine

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/snapshot"
)

// Cooldown suppresses repeated alerts for the same (vehicle, kind)
// within a configurable window. Entries are kept in a go-cache store
// whose TTL doubles as stale-entry housekeeping; correctness comes from
// the timestamp comparison against the caller-supplied now, so the
// window behaves deterministically under a stepped clock in tests.
type Cooldown struct {
	window time.Duration
	store  *cache.Cache
}

// NewCooldown creates a cooldown manager with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		store:  cache.New(window, 2*window),
	}
}

// ShouldEmit reports whether an alert of the given kind may fire for the
// vehicle at time now. A true result does not reserve the window; the
// caller must follow up with Record.
func (c *Cooldown) ShouldEmit(id snapshot.VehicleID, kind alert.Kind, now time.Time) bool {
	v, found := c.store.Get(cooldownKey(id, kind))
	if !found {
		return true
	}
	last := v.(time.Time)
	return now.Sub(last) >= c.window
}

// Record marks time now as the start of a fresh suppression window for
// the (vehicle, kind) pair.
func (c *Cooldown) Record(id snapshot.VehicleID, kind alert.Kind, now time.Time) {
	c.store.Set(cooldownKey(id, kind), now, cache.DefaultExpiration)
}

func cooldownKey(id snapshot.VehicleID, kind alert.Kind) string {
	return fmt.Sprintf("%s|%s", id, kind)
}
