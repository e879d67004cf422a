package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Engine validation
	if c.Engine.MaxArchiveBytes < 1 {
		errs = append(errs, "engine.max_archive_bytes must be >= 1")
	}
	if c.Engine.MaxEntries < 1 {
		errs = append(errs, "engine.max_entries must be >= 1")
	}
	if c.Engine.MaxEntryBytes < 1 {
		errs = append(errs, "engine.max_entry_bytes must be >= 1")
	}
	if c.Engine.TimeoutMs < 1 {
		errs = append(errs, "engine.timeout_ms must be >= 1")
	}

	// Policy validation
	if err := c.Policy.ToPolicy().Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("policy: %v", err))
	}

	// UI validation
	if c.UI.TickIntervalMs < 1 {
		errs = append(errs, "ui.tick_interval_ms must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
