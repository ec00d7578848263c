package config

import (
	"time"

	"campusfound/beacon/pkg/lifecycle/retention"
	"campusfound/beacon/pkg/telemetry/logging"
)

// Default values for configuration fields.
const (
	// Storage defaults
	DefaultStorageBackend    = "sqlite"
	DefaultSQLitePath        = "data/beacon.db"
	DefaultSQLiteMaxOpen     = 10
	DefaultSQLiteMaxIdle     = 5
	DefaultSQLiteWALMode     = true
	DefaultSQLiteBusyTimeout = 5 * time.Second

	// Fanout defaults
	DefaultFanoutEnabled = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Metrics defaults
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = ":9090"
)

// Default returns a fully populated configuration. Load unmarshals the
// file over this baseline, so omitted fields keep their defaults and
// explicitly-set false booleans still win.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: DefaultStorageBackend,
			SQLite: SQLiteConfig{
				Path:         DefaultSQLitePath,
				MaxOpenConns: DefaultSQLiteMaxOpen,
				MaxIdleConns: DefaultSQLiteMaxIdle,
				WALMode:      DefaultSQLiteWALMode,
				BusyTimeout:  DefaultSQLiteBusyTimeout,
			},
		},
		Fanout: FanoutConfig{
			Enabled: DefaultFanoutEnabled,
		},
		Cleanup: *retention.DefaultConfig(),
		Logging: logging.Config{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled:       DefaultMetricsEnabled,
			ListenAddress: DefaultMetricsListenAddress,
		},
	}
}

// ApplyDefaults fills zero-valued fields of a partially built
// configuration. Boolean fields are left alone: absence and false are
// indistinguishable here, which is why Load prefers unmarshalling over
// Default instead.
func ApplyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Storage.SQLite.MaxOpenConns == 0 {
		cfg.Storage.SQLite.MaxOpenConns = DefaultSQLiteMaxOpen
	}
	if cfg.Storage.SQLite.MaxIdleConns == 0 {
		cfg.Storage.SQLite.MaxIdleConns = DefaultSQLiteMaxIdle
	}
	if cfg.Storage.SQLite.BusyTimeout == 0 {
		cfg.Storage.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Cleanup.FoundItems.ThresholdHours == 0 {
		cfg.Cleanup.FoundItems.ThresholdHours = retention.DefaultConfig().FoundItems.ThresholdHours
	}
	if cfg.Cleanup.StaleConversations.ThresholdDays == 0 {
		cfg.Cleanup.StaleConversations.ThresholdDays = retention.DefaultConfig().StaleConversations.ThresholdDays
	}
	if cfg.Cleanup.BatchLimit == 0 {
		cfg.Cleanup.BatchLimit = retention.DefaultConfig().BatchLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
}
