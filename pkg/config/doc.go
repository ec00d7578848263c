// Package config provides configuration loading, validation, and hot
// reloading for the Beacon lifecycle engine.
//
// # Overview
//
// Configuration is a YAML file with sections for storage backend
// selection, match fan-out, retention cleanup policies, logging, and
// metrics. Loading starts from a fully populated default configuration
// and unmarshals the file over it, so omitted fields keep their
// defaults while explicit values, including explicit false booleans,
// always win.
//
// Environment variables named BEACON_SECTION_FIELD (for example
// BEACON_STORAGE_BACKEND or BEACON_CLEANUP_BATCH_LIMIT) override both
// defaults and file values.
//
// # Validation
//
// Validate collects every broken rule into a single ValidationError
// rather than stopping at the first, so one failed start reports the
// whole set of problems.
//
// # Hot reload
//
// Watcher observes the configuration file through fsnotify and, after a
// short debounce, reloads and revalidates it. A broken edit is logged
// and the previous configuration stays in effect. The daemon uses this
// to retarget retention policy toggles and thresholds without a
// restart.
package config
