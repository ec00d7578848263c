package retention

// FoundItemsPolicy configures the resolved-item conversation purge:
// once a found item has been resolved for longer than the threshold,
// its conversations have served their purpose.
type FoundItemsPolicy struct {
	// Enabled toggles the policy. Disabled by default; the product has
	// not committed to auto-expiring resolved-item conversations yet.
	Enabled bool `yaml:"enabled"`

	// ThresholdHours is the age a found item's resolution must reach
	// before its conversations become purge targets.
	ThresholdHours int `yaml:"threshold_hours"`
}

// StaleConversationsPolicy configures the age-based conversation purge,
// independent of the referenced item's status.
type StaleConversationsPolicy struct {
	// Enabled toggles the policy.
	Enabled bool `yaml:"enabled"`

	// ThresholdDays is the conversation age that makes it stale.
	ThresholdDays int `yaml:"threshold_days"`
}

// Config contains configuration for the retention engine. The two
// policies are independent: either, both, or neither may be enabled,
// and they may select overlapping conversation sets, since re-purging an
// already-purged conversation yields nothing.
type Config struct {
	// FoundItems is the resolved-item conversation purge policy.
	FoundItems FoundItemsPolicy `yaml:"found_items"`

	// StaleConversations is the age-based conversation purge policy.
	StaleConversations StaleConversationsPolicy `yaml:"stale_conversations"`

	// BatchLimit caps the number of operations in one atomic batch
	// write. Deletion beyond the cap commits the current batch and
	// continues in a new one.
	BatchLimit int `yaml:"batch_limit"`

	// Schedule is a cron expression for scheduled cleanup runs.
	// Example: "0 * * * *" (hourly). Empty disables scheduling.
	Schedule string `yaml:"schedule"`
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		FoundItems: FoundItemsPolicy{
			Enabled:        false,
			ThresholdHours: 24,
		},
		StaleConversations: StaleConversationsPolicy{
			Enabled:       true,
			ThresholdDays: 7,
		},
		BatchLimit: 500,
		Schedule:   "0 * * * *",
	}
}
