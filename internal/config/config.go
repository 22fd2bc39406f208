// ABOUTME: sporttimer configuration management with backend selection.
// ABOUTME: Handles the config file, logging options, and storage/settings factories.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/sporttimer/internal/charm"
	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/settings"
	"github.com/harperreed/sporttimer/internal/storage"
)

// Backend names accepted in the config file and on the command line.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Backends lists every supported backend.
var Backends = []string{BackendSQLite, BackendCharm, BackendMemory}

// Config stores sporttimer configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts sporttimer.db here and the settings store lives in settings/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/sporttimer.
	DataDir string `json:"data_dir,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`

	// SearchDebounceMS is the delay before an interactive search runs.
	SearchDebounceMS int `json:"search_debounce_ms,omitempty"`

	// WeekStart names the first day of the week ("monday", "sunday", ...).
	WeekStart string `json:"week_start,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel defaults to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or "" for stderr only.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// GetSearchDebounce returns the interactive search delay.
func (c *Config) GetSearchDebounce() time.Duration {
	if c.SearchDebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// GetCalendar returns the week rules for range filters.
func (c *Config) GetCalendar() (daterange.Calendar, error) {
	if c.WeekStart == "" {
		return daterange.ISO, nil
	}
	day, err := daterange.ParseWeekday(c.WeekStart)
	if err != nil {
		return daterange.ISO, err
	}
	return daterange.Calendar{WeekStart: day}, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend using this config's data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		db, err := storage.Open(filepath.Join(c.GetDataDir(), "sporttimer.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendCharm:
		client, err := charm.InitClient()
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (use %s)", backend, strings.Join(Backends, ", "))
	}
}

// SettingsDir is where the settings store keeps its files.
func (c *Config) SettingsDir() string {
	return filepath.Join(c.GetDataDir(), "settings")
}

// OpenSettings opens the settings store. The memory backend keeps
// settings in memory too. A *settings.DefaultError comes with a usable
// Store; see settings.Open.
func (c *Config) OpenSettings() (settings.Store, error) {
	if c.GetBackend() == BackendMemory {
		return settings.NewMemoryStore(), nil
	}
	dir := c.SettingsDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	return settings.Open(dir)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "sporttimer", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
