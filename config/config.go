package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Engine     EngineConfig     `yaml:"engine"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// SnapshotConfig defines how the fleet and geofence rosters are fetched
// from the upstream management system.
type SnapshotConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	HTTPProxy      string            `yaml:"http_proxy"`
}

// EngineConfig holds the evaluation loop policy knobs.
type EngineConfig struct {
	Enabled                   bool          `yaml:"enabled"`
	EvaluationIntervalSeconds int           `yaml:"evaluation_interval_seconds"`
	EvaluationInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
	OnlineFreshnessMinutes    int           `yaml:"online_freshness_minutes"`
	OnlineFreshness           time.Duration `yaml:"-"`
	CooldownWindowMinutes     int           `yaml:"cooldown_window_minutes"`
	CooldownWindow            time.Duration `yaml:"-"`
	HistoryPruneHours         int           `yaml:"history_prune_hours"`
	HistoryPruneAfter         time.Duration `yaml:"-"`
	EmitTimeoutSeconds        int           `yaml:"emit_timeout_seconds"`
	EmitTimeout               time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Engine.EvaluationIntervalSeconds <= 0 {
		cfg.Engine.EvaluationIntervalSeconds = 15
	}
	cfg.Engine.EvaluationInterval = time.Duration(cfg.Engine.EvaluationIntervalSeconds) * time.Second

	if cfg.Engine.OnlineFreshnessMinutes <= 0 {
		cfg.Engine.OnlineFreshnessMinutes = 15
	}
	cfg.Engine.OnlineFreshness = time.Duration(cfg.Engine.OnlineFreshnessMinutes) * time.Minute

	if cfg.Engine.CooldownWindowMinutes <= 0 {
		cfg.Engine.CooldownWindowMinutes = 5
	}
	cfg.Engine.CooldownWindow = time.Duration(cfg.Engine.CooldownWindowMinutes) * time.Minute

	if cfg.Engine.HistoryPruneHours <= 0 {
		cfg.Engine.HistoryPruneHours = 24
	}
	cfg.Engine.HistoryPruneAfter = time.Duration(cfg.Engine.HistoryPruneHours) * time.Hour

	if cfg.Engine.EmitTimeoutSeconds <= 0 {
		cfg.Engine.EmitTimeoutSeconds = 5
	}
	cfg.Engine.EmitTimeout = time.Duration(cfg.Engine.EmitTimeoutSeconds) * time.Second

	if cfg.Snapshot.TimeoutSeconds <= 0 {
		cfg.Snapshot.TimeoutSeconds = 10
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
