package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseConfig holds the SQLite store settings.
type DatabaseConfig struct {
	Path        string `json:"path"`
	JournalMode string `json:"journalMode"`
	Synchronous string `json:"synchronous"`
	BusyTimeout int    `json:"busyTimeout"` // milliseconds
}

// NewDatabaseConfig returns the default configuration for the store at path.
func NewDatabaseConfig(path string) *DatabaseConfig {
	return &DatabaseConfig{
		Path:        path,
		JournalMode: "WAL",
		Synchronous: "NORMAL",
		BusyTimeout: 5000,
	}
}

// GetDSN returns the data source name handed to the sqlite driver.
func (c *DatabaseConfig) GetDSN() string {
	params := make([]string, 0, 3)
	if c.JournalMode != "" {
		params = append(params, "_journal_mode="+c.JournalMode)
	}
	if c.Synchronous != "" {
		params = append(params, "_synchronous="+c.Synchronous)
	}
	if c.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", c.BusyTimeout))
	}
	if len(params) == 0 {
		return c.Path
	}
	return c.Path + "?" + strings.Join(params, "&")
}

// ValidateConfig validates the database configuration.
func (c *DatabaseConfig) ValidateConfig() error {
	if c.Path == "" {
		return fmt.Errorf("SQLite path cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("SQLite busy timeout cannot be negative")
	}
	return nil
}

// EnsureDirectoryExists creates the folder holding the database file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}
