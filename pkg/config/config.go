package config

import (
	"time"

	"campusfound/beacon/pkg/lifecycle/retention"
	"campusfound/beacon/pkg/telemetry/logging"
)

// Config is the root configuration structure for Beacon. It contains
// all configuration sections for storage, the matching fan-out, the
// retention cleanup policies, and telemetry.
type Config struct {
	// Storage selects and configures the document store backend.
	Storage StorageConfig `yaml:"storage"`

	// Fanout configures match notification fan-out.
	Fanout FanoutConfig `yaml:"fanout"`

	// Cleanup configures the retention policies, batch limit, and
	// cleanup schedule.
	Cleanup retention.Config `yaml:"cleanup"`

	// Logging configures structured log output.
	Logging logging.Config `yaml:"logging"`

	// Metrics configures the Prometheus scrape endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	// Backend is the store implementation: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend. Ignored for "memory".
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains configuration for the sqlite store backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/beacon.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// FanoutConfig contains configuration for match notification fan-out.
type FanoutConfig struct {
	// Enabled toggles notification fan-out when items are reported.
	// Default: true
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig contains configuration for the metrics endpoint.
type MetricsConfig struct {
	// Enabled toggles metric recording and the scrape endpoint.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the scrape endpoint binds to.
	// Default: ":9090"
	ListenAddress string `yaml:"listen_address"`
}
