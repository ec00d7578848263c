// Package telemetry provides observability for the Beacon lifecycle
// engine.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics for fan-out and cleanup runs
//
// # Usage
//
//	logger, err := logging.Setup(cfg.Logging)
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)
//	collector.RecordCleanupRun("success", elapsed)
//
// A nil *metrics.Collector is a valid no-op recorder, so components
// accept one without guarding every call site.
package telemetry
