package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Zero keeps the key forever.
	RecordTTL time.Duration
	ResultTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration.
// Imported records are the user's library and do not expire.
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		RecordTTL:    0,
		ResultTTL:    90 * 24 * time.Hour,
	}
}
