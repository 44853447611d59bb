package sqlite

import "time"

// Config holds SQLite settings
type Config struct {
	// Path is the database file. Parent directories are created on open.
	Path string

	BusyTimeout time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:        "./data/gomemo.db",
		BusyTimeout: 5 * time.Second,
	}
}
