package config

import (
	"time"

	"github.com/Cyclone1070/armorclaw/internal/archive"
	"github.com/Cyclone1070/armorclaw/internal/policy"
)

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Engine EngineConfig `json:"engine"`
	Policy PolicyConfig `json:"policy"`
	UI     UIConfig     `json:"ui"`
}

type EngineConfig struct {
	// Archive limits
	MaxArchiveBytes int64 `json:"max_archive_bytes"` // Default: 50 * 1024 * 1024 (50MB)
	MaxEntries      int   `json:"max_entries"`       // Default: 10000
	MaxEntryBytes   int64 `json:"max_entry_bytes"`   // Default: 20 * 1024 * 1024 (20MB)

	// Whole-run deadline
	TimeoutMs int `json:"timeout_ms"` // Default: 30000
}

// PolicyConfig is the policy used when no policy file is given.
type PolicyConfig struct {
	AllowedFolders     []string `json:"allowed_folders"`
	RestrictedFiles    []string `json:"restricted_files"`
	AllowedFileTypes   []string `json:"allowed_file_types"`
	MaxFileChanges     int      `json:"max_file_changes"`
	RestrictedCommands []string `json:"restricted_commands"`
}

type UIConfig struct {
	TickIntervalMs int `json:"tick_interval_ms"` // Default: 100

	ColorPrimary string `json:"color_primary"` // Default: "63"
	ColorSuccess string `json:"color_success"` // Default: "42"
	ColorError   string `json:"color_error"`   // Default: "196"
	ColorWarn    string `json:"color_warn"`    // Default: "214"
	ColorMuted   string `json:"color_muted"`   // Default: "241"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	p := policy.Default()
	return &Config{
		Engine: EngineConfig{
			MaxArchiveBytes: 50 * 1024 * 1024,
			MaxEntries:      10000,
			MaxEntryBytes:   20 * 1024 * 1024,
			TimeoutMs:       30000,
		},
		Policy: PolicyConfig{
			AllowedFolders:     p.AllowedFolders,
			RestrictedFiles:    p.RestrictedFiles,
			AllowedFileTypes:   p.AllowedFileTypes,
			MaxFileChanges:     p.MaxFileChanges,
			RestrictedCommands: p.RestrictedCommands,
		},
		UI: UIConfig{
			TickIntervalMs: 100,
			ColorPrimary:   "63",
			ColorSuccess:   "42",
			ColorError:     "196",
			ColorWarn:      "214",
			ColorMuted:     "241",
		},
	}
}

// ToPolicy converts the configured default policy.
func (p PolicyConfig) ToPolicy() policy.Policy {
	return policy.Policy{
		AllowedFolders:     p.AllowedFolders,
		RestrictedFiles:    p.RestrictedFiles,
		AllowedFileTypes:   p.AllowedFileTypes,
		MaxFileChanges:     p.MaxFileChanges,
		RestrictedCommands: p.RestrictedCommands,
	}
}

// Limits returns the archive decoding limits.
func (e EngineConfig) Limits() archive.Limits {
	return archive.Limits{MaxEntries: e.MaxEntries, MaxEntryBytes: e.MaxEntryBytes}
}

// Timeout returns the run deadline.
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutMs) * time.Millisecond
}

// TickInterval returns the spinner tick interval.
func (u UIConfig) TickInterval() time.Duration {
	return time.Duration(u.TickIntervalMs) * time.Millisecond
}
