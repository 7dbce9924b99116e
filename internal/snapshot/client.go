package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"geofence-alert-backend/config"
)

// Client fetches the vehicle and geofence rosters from the upstream
// management system. It is read-only; the engine never writes back.
type Client struct {
	cfg    *config.SnapshotConfig
	client *http.Client
}

// fleetResponse models the upstream fleet roster payload.
type fleetResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}

// geofenceResponse models the upstream geofence roster payload.
type geofenceResponse struct {
	Geofences []Geofence `json:"geofences"`
}

// NewClient creates a snapshot client from the configuration.
func NewClient(cfg *config.SnapshotConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Snapshot client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch retrieves both rosters. An error from either endpoint fails the
// whole snapshot; the caller skips the tick rather than evaluating a
// partial view.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	var fleet fleetResponse
	if err := c.getJSON(ctx, "/fleet", &fleet); err != nil {
		return nil, fmt.Errorf("fetch fleet roster: %w", err)
	}

	var fences geofenceResponse
	if err := c.getJSON(ctx, "/geofences", &fences); err != nil {
		return nil, fmt.Errorf("fetch geofence roster: %w", err)
	}

	return &Snapshot{Vehicles: fleet.Vehicles, Geofences: fences.Geofences}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
