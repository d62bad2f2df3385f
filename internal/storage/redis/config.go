package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ParticipantTTL bounds how long an abandoned participant record survives.
	// Presence is soft state, so records that never disconnect cleanly expire.
	ParticipantTTL time.Duration
	// VoteTTL bounds the retention of a room's vote history
	VoteTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		ParticipantTTL: 24 * time.Hour,
		VoteTTL:        7 * 24 * time.Hour,
	}
}
