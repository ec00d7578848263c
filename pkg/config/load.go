package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path. The
// file is unmarshalled over the defaults, so omitted fields keep their
// default values. The result is validated before being returned.
//
// An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the
// naming convention BEACON_SECTION_FIELD (e.g. BEACON_STORAGE_BACKEND)
// and always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Start from defaults
//  2. Unmarshal the YAML file over them
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides using the
// format BEACON_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Storage overrides
	if val := os.Getenv("BEACON_STORAGE_BACKEND"); val != "" {
		cfg.Storage.Backend = val
	}
	if val := os.Getenv("BEACON_STORAGE_SQLITE_PATH"); val != "" {
		cfg.Storage.SQLite.Path = val
	}
	if val := os.Getenv("BEACON_STORAGE_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Storage.SQLite.BusyTimeout = d
		}
	}

	// Fanout overrides
	if val := os.Getenv("BEACON_FANOUT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Fanout.Enabled = b
		}
	}

	// Cleanup overrides
	if val := os.Getenv("BEACON_CLEANUP_FOUND_ITEMS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cleanup.FoundItems.Enabled = b
		}
	}
	if val := os.Getenv("BEACON_CLEANUP_FOUND_ITEMS_THRESHOLD_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cleanup.FoundItems.ThresholdHours = i
		}
	}
	if val := os.Getenv("BEACON_CLEANUP_STALE_CONVERSATIONS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cleanup.StaleConversations.Enabled = b
		}
	}
	if val := os.Getenv("BEACON_CLEANUP_STALE_CONVERSATIONS_THRESHOLD_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cleanup.StaleConversations.ThresholdDays = i
		}
	}
	if val := os.Getenv("BEACON_CLEANUP_BATCH_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cleanup.BatchLimit = i
		}
	}
	if val := os.Getenv("BEACON_CLEANUP_SCHEDULE"); val != "" {
		cfg.Cleanup.Schedule = val
	}

	// Logging overrides
	if val := os.Getenv("BEACON_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("BEACON_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// Metrics overrides
	if val := os.Getenv("BEACON_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("BEACON_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
}
