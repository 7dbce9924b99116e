package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofence-alert-backend/internal/model"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d clients", want)
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForClients(t, hub, 1)

	hub.Broadcast(model.Alert{
		VehicleID: "v1",
		AlertType: "violation_enter",
		Message:   "Vehicle Truck entered forbidden zone Depot",
		Location:  "-6.2088, 106.8456",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got model.Alert
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "v1", got.VehicleID)
	assert.Equal(t, "violation_enter", got.AlertType)
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	waitForClients(t, hub, 1)
	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Broadcast(model.Alert{VehicleID: "v1"})
	})
}
