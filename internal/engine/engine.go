package engine

import (
	"context"
	"log"
	"time"

	"geofence-alert-backend/config"
	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/snapshot"
)

// Fetcher supplies one tick's view of the fleet and geofence rosters.
type Fetcher interface {
	Fetch(ctx context.Context) (*snapshot.Snapshot, error)
}

// Emitter receives qualifying violations. Implementations own the sink
// fan-out; failures there must not surface back into the loop.
type Emitter interface {
	Emit(ctx context.Context, v alert.Violation)
}

// Service drives the periodic evaluation of the whole fleet. Each tick
// runs every eligible vehicle through the tracker, the rule table and
// the cooldown check, in that order, emitting at most one alert per
// vehicle transition.
type Service struct {
	cfg      *config.EngineConfig
	fetcher  Fetcher
	emitter  Emitter
	tracker  *Tracker
	cooldown *Cooldown

	// now is swappable so tests can step a fake clock instead of
	// waiting on wall-clock timers.
	now func() time.Time

	lastPrune time.Time
}

// NewService creates the evaluation loop service.
func NewService(cfg *config.EngineConfig, fetcher Fetcher, emitter Emitter) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		emitter:  emitter,
		tracker:  NewTracker(),
		cooldown: NewCooldown(cfg.CooldownWindow),
		now:      time.Now,
	}
}

// Run starts the evaluation loop and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Evaluation engine is disabled. Not starting.")
		return
	}
	log.Println("Starting geofence evaluation engine...")

	s.EvaluateOnce(ctx)

	timer := time.NewTimer(s.cfg.EvaluationInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Evaluation engine shutting down.")
			return
		case <-timer.C:
			s.EvaluateOnce(ctx)
			timer.Reset(s.cfg.EvaluationInterval)
		}
	}
}

// EvaluateOnce performs a single tick over the current fleet snapshot.
// A snapshot fetch failure skips the whole tick; per-vehicle problems
// only skip that vehicle.
func (s *Service) EvaluateOnce(ctx context.Context) {
	now := s.now()

	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("Error fetching snapshot, skipping tick: %v", err)
		return
	}

	fences := make(map[int64]*snapshot.Geofence, len(snap.Geofences))
	for i := range snap.Geofences {
		fence := &snap.Geofences[i]
		if !fence.Active() {
			continue
		}
		if !fence.ValidGeometry() {
			log.Printf("Geofence %d (%s) has invalid geometry, skipping", fence.ID, fence.Label())
			continue
		}
		fences[fence.ID] = fence
	}

	for i := range snap.Vehicles {
		s.evaluateVehicle(ctx, &snap.Vehicles[i], fences, now)
	}

	// Housekeeping: drop history for vehicles not evaluated in a while.
	if now.Sub(s.lastPrune) >= s.cfg.HistoryPruneAfter {
		if removed := s.tracker.PruneBefore(now.Add(-s.cfg.HistoryPruneAfter)); removed > 0 {
			log.Printf("Pruned %d stale vehicle history entries", removed)
		}
		s.lastPrune = now
	}
}

// evaluateVehicle runs the strict per-vehicle pipeline: tracker update,
// rule evaluation, cooldown check, emission. A vehicle that is offline,
// unassigned, or lacks a fresh parseable position is skipped with its
// history left untouched.
func (s *Service) evaluateVehicle(ctx context.Context, v *snapshot.Vehicle, fences map[int64]*snapshot.Geofence, now time.Time) {
	if v.AssignedGeofenceID == nil {
		return
	}
	fence, ok := fences[*v.AssignedGeofenceID]
	if !ok {
		return
	}

	if !v.Online || v.LastPosition == nil {
		return
	}
	sampledAt, err := v.LastPosition.ParseTimestamp()
	if err != nil {
		log.Printf("Vehicle %s has unparseable position timestamp: %v", v.ID, err)
		return
	}
	if now.Sub(sampledAt) > s.cfg.OnlineFreshness {
		return
	}
	pos := v.LastPosition.Point()
	if !pos.Valid() {
		log.Printf("Vehicle %s has invalid coordinates, skipping", v.ID)
		return
	}

	wasInside, isInside := s.tracker.Update(v.ID, pos, fence, now)

	kind, violated := EvaluateRule(fence.RuleType, wasInside, isInside)
	if !violated {
		return
	}

	if !s.cooldown.ShouldEmit(v.ID, kind, now) {
		log.Printf("Suppressing %s for vehicle %s: cooldown window active", kind, v.ID)
		return
	}
	s.cooldown.Record(v.ID, kind, now)

	emitCtx, cancel := context.WithTimeout(ctx, s.cfg.EmitTimeout)
	defer cancel()

	s.emitter.Emit(emitCtx, alert.Violation{
		VehicleID:    v.ID,
		VehicleName:  v.Label(),
		GeofenceID:   fence.ID,
		GeofenceName: fence.Label(),
		RuleType:     fence.RuleType,
		Kind:         kind,
		Position:     pos,
		At:           now,
	})
}
