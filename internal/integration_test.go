package internal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"geofence-alert-backend/config"
	"geofence-alert-backend/internal/alert"
	"geofence-alert-backend/internal/db"
	"geofence-alert-backend/internal/engine"
	"geofence-alert-backend/internal/model"
	"geofence-alert-backend/internal/snapshot"
)

// TestViolationLifecycle wires the real snapshot client, engine and
// GORM-backed alert sink together against an in-memory database and an
// httptest upstream, and walks one vehicle into a forbidden zone.
func TestViolationLifecycle(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	// The upstream serves a position that the test swaps between ticks.
	position := struct{ lat, lng float64 }{-5.3088, 106.8456} // ~100 km out

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fleet":
			fmt.Fprintf(w, `{"vehicles":[{"vehicleId":"V1","name":"Truck V1","assignedGeofenceId":1,"online":true,
				"lastPosition":{"lat":%f,"lng":%f,"timestamp":%q}}]}`,
				position.lat, position.lng, time.Now().UTC().Format(time.RFC3339))
		case "/geofences":
			fmt.Fprint(w, `{"geofences":[{"geofenceId":1,"name":"G1","ruleType":"FORBIDDEN","status":"active",
				"kind":"circle","geometry":{"center":[106.8456,-6.2088],"radiusMeters":500}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := &config.EngineConfig{
		Enabled:            true,
		EvaluationInterval: 15 * time.Second,
		OnlineFreshness:    15 * time.Minute,
		CooldownWindow:     5 * time.Minute,
		HistoryPruneAfter:  24 * time.Hour,
		EmitTimeout:        5 * time.Second,
	}

	client := snapshot.NewClient(&config.SnapshotConfig{BaseURL: server.URL, TimeoutSeconds: 2})
	emitter := alert.NewEmitter(alert.NewGormStore(testDB), nil, nil)
	svc := engine.NewService(cfg, client, emitter)

	ctx := context.Background()
	alertCount := func() int64 {
		var n int64
		require.NoError(t, testDB.Model(&model.Alert{}).Count(&n).Error)
		return n
	}

	// Tick 1: far outside. History is initialized, nothing fires.
	svc.EvaluateOnce(ctx)
	assert.EqualValues(t, 0, alertCount())

	// Tick 2: at the center. One entry alert is persisted.
	position.lat, position.lng = -6.2088, 106.8456
	svc.EvaluateOnce(ctx)
	require.EqualValues(t, 1, alertCount())

	var rec model.Alert
	require.NoError(t, testDB.First(&rec).Error)
	assert.Equal(t, "V1", rec.VehicleID)
	assert.Equal(t, "violation_enter", rec.AlertType)
	assert.Equal(t, "Vehicle Truck V1 entered forbidden zone G1", rec.Message)
	assert.Equal(t, "-6.2088, 106.8456", rec.Location)

	// Tick 3: unchanged position. Idempotent, no new alert.
	svc.EvaluateOnce(ctx)
	assert.EqualValues(t, 1, alertCount())

	// Tick 4: leaves the zone. FORBIDDEN ignores exits.
	position.lat = -5.3088
	svc.EvaluateOnce(ctx)
	assert.EqualValues(t, 1, alertCount())

	// Tick 5: re-enters within the cooldown window; suppressed.
	position.lat = -6.2088
	svc.EvaluateOnce(ctx)
	assert.EqualValues(t, 1, alertCount())
}
