// Beacon is the background lifecycle engine for a campus lost-and-found
// marketplace.
//
// It watches the item, conversation, and message records the
// marketplace produces and keeps them healthy:
//   - Match notification fan-out when new items are reported
//   - Retention policies that purge conversations for resolved items
//     and conversations that have simply gone stale
//   - Cascading, batched deletion of conversations and their messages
//
// Usage:
//
//	# Start the daemon with default configuration
//	beacon run
//
//	# Start with a custom configuration file
//	beacon run --config /path/to/beacon.yaml
//
//	# Run one cleanup cycle and print the summary
//	beacon cleanup --output json
//
//	# Fan out notifications for an already-stored item
//	beacon fanout item-123
//
//	# Show version information
//	beacon version
package main

func main() {
	Execute()
}
