package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "armorclaw"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// PathEnv names an explicit config file that replaces the default location
	PathEnv = "ARMORCLAW_CONFIG"
)

// FileSystem abstracts the process environment the loader reads from
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Getenv(key string) string
}

// OSEnvironment implements FileSystem using the real OS
type OSEnvironment struct{}

func (OSEnvironment) UserHomeDir() (string, error)         { return os.UserHomeDir() }
func (OSEnvironment) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (OSEnvironment) Getenv(key string) string             { return os.Getenv(key) }

// Loader builds the armorclaw configuration: engine limits for archive
// decoding and run timeouts, the default policy offered to the CLI, and the
// terminal theme.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a Loader backed by the real environment
func NewLoader() *Loader {
	return &Loader{fs: OSEnvironment{}}
}

// NewLoaderWithFS creates a Loader with a custom environment (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Path returns the config file the loader reads and whether it was named
// explicitly through PathEnv. It is empty when no home directory is known
// and PathEnv is unset.
func (l *Loader) Path() (string, bool) {
	if p := l.fs.Getenv(PathEnv); p != "" {
		return p, true
	}
	home, err := l.fs.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, ".config", ConfigDir, ConfigFile), false
}

// Load reads the config file as JSON over DefaultConfig, so keys present in
// the file (including explicit zero values and empty policy lists) replace
// the defaults and absent keys keep them. The result is validated as a whole.
//
// A missing file at the default location yields the defaults. A file named
// through PathEnv must exist.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path, explicit := l.Path()
	if path == "" {
		return cfg, nil
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
