package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "storage.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. All field errors are collected and reported together.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. It returns a
// ValidationError listing every failed rule, or nil if the
// configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	switch cfg.Storage.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("must be \"memory\" or \"sqlite\", got %q", cfg.Storage.Backend),
		})
	}
	if cfg.Storage.Backend == "sqlite" && cfg.Storage.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.path",
			Message: "must not be empty",
		})
	}
	if cfg.Storage.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite.busy_timeout",
			Message: "must not be negative",
		})
	}

	if cfg.Cleanup.FoundItems.Enabled && cfg.Cleanup.FoundItems.ThresholdHours <= 0 {
		errs = append(errs, FieldError{
			Field:   "cleanup.found_items.threshold_hours",
			Message: "must be positive when the policy is enabled",
		})
	}
	if cfg.Cleanup.StaleConversations.Enabled && cfg.Cleanup.StaleConversations.ThresholdDays <= 0 {
		errs = append(errs, FieldError{
			Field:   "cleanup.stale_conversations.threshold_days",
			Message: "must be positive when the policy is enabled",
		})
	}
	if cfg.Cleanup.BatchLimit <= 0 {
		errs = append(errs, FieldError{
			Field:   "cleanup.batch_limit",
			Message: "must be positive",
		})
	}
	if cfg.Cleanup.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Cleanup.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "cleanup.schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.listen_address",
			Message: "must not be empty when metrics are enabled",
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
