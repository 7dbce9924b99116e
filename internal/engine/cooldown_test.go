package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/snapshot"
)

func TestCooldown_SuppressesWithinWindow(t *testing.T) {
	cd := NewCooldown(5 * time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	vid := snapshot.VehicleID("v1")

	assert.True(t, cd.ShouldEmit(vid, alert.KindEnter, now))
	cd.Record(vid, alert.KindEnter, now)

	// One minute later: still suppressed.
	assert.False(t, cd.ShouldEmit(vid, alert.KindEnter, now.Add(1*time.Minute)))

	// Exactly at the window boundary: a fresh alert may fire.
	assert.True(t, cd.ShouldEmit(vid, alert.KindEnter, now.Add(5*time.Minute)))

	// Six minutes later: fires, and recording resets the window.
	later := now.Add(6 * time.Minute)
	assert.True(t, cd.ShouldEmit(vid, alert.KindEnter, later))
	cd.Record(vid, alert.KindEnter, later)
	assert.False(t, cd.ShouldEmit(vid, alert.KindEnter, later.Add(4*time.Minute)))
}

func TestCooldown_KeysAreIndependent(t *testing.T) {
	cd := NewCooldown(5 * time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cd.Record("v1", alert.KindEnter, now)

	// A different kind for the same vehicle is not suppressed.
	assert.True(t, cd.ShouldEmit("v1", alert.KindExit, now.Add(time.Second)))

	// The same kind for a different vehicle is not suppressed.
	assert.True(t, cd.ShouldEmit("v2", alert.KindEnter, now.Add(time.Second)))

	// The recorded key itself is.
	assert.False(t, cd.ShouldEmit("v1", alert.KindEnter, now.Add(time.Second)))
}
