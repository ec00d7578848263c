// Package metrics provides Prometheus metrics for the lifecycle
// engines.
//
// # Metrics
//
// Fan-out:
//   - beacon_lifecycle_notifications_created_total
//   - beacon_lifecycle_fanout_failures_total
//   - beacon_lifecycle_fanout_duration_seconds
//
// Cleanup:
//   - beacon_lifecycle_cleanup_runs_total{status}
//   - beacon_lifecycle_conversations_deleted_total{policy}
//   - beacon_lifecycle_messages_deleted_total{policy}
//   - beacon_lifecycle_cleanup_duration_seconds
//
// # Usage
//
//	collector := metrics.NewCollector(cfg, nil)
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector is a valid no-op recorder, so engines never need to
// branch on whether metrics are wired.
package metrics
