package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/mcoot/scrumpoker/internal/api"
	badgerstorage "github.com/mcoot/scrumpoker/internal/storage/badger"
	redisstorage "github.com/mcoot/scrumpoker/internal/storage/redis"
	"github.com/mcoot/scrumpoker/internal/transport/ws"
)

// Prefix is prepended to every environment variable, e.g. SCRUMPOKER_PORT
const Prefix = "SCRUMPOKER"

// Config is the server configuration read from the environment
type Config struct {
	Host            string        `envconfig:"HOST" default:""`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`

	// StorageType selects the directory backend: memory, redis or badger
	StorageType       string        `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL          string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	RedisMinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	BadgerPath        string        `envconfig:"BADGER_PATH" default:""`
	ParticipantTTL    time.Duration `envconfig:"PARTICIPANT_TTL" default:"24h"`
	VoteTTL           time.Duration `envconfig:"VOTE_TTL" default:"168h"`

	WSSendBuffer     int           `envconfig:"WS_SEND_BUFFER" default:"256"`
	WSWriteWait      time.Duration `envconfig:"WS_WRITE_WAIT" default:"10s"`
	WSPongWait       time.Duration `envconfig:"WS_PONG_WAIT" default:"60s"`
	WSPingPeriod     time.Duration `envconfig:"WS_PING_PERIOD" default:"54s"`
	WSMaxMessageSize int64         `envconfig:"WS_MAX_MESSAGE_SIZE" default:"32768"`
}

// Load reads the configuration from SCRUMPOKER_* environment variables
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.WSPingPeriod >= cfg.WSPongWait {
		return Config{}, fmt.Errorf("load config: WS_PING_PERIOD (%s) must be shorter than WS_PONG_WAIT (%s)", cfg.WSPingPeriod, cfg.WSPongWait)
	}
	return cfg, nil
}

// Server returns the HTTP server settings
func (c Config) Server() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Host,
		Port:            c.Port,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// Redis returns the Redis directory settings
func (c Config) Redis() redisstorage.Config {
	return redisstorage.Config{
		URL:            c.RedisURL,
		PoolSize:       c.RedisPoolSize,
		MinIdleConns:   c.RedisMinIdleConns,
		ParticipantTTL: c.ParticipantTTL,
		VoteTTL:        c.VoteTTL,
	}
}

// Badger returns the embedded directory settings
func (c Config) Badger() badgerstorage.Config {
	return badgerstorage.Config{
		Path:           c.BadgerPath,
		ParticipantTTL: c.ParticipantTTL,
		VoteTTL:        c.VoteTTL,
	}
}

// WS returns the channel settings
func (c Config) WS() ws.Config {
	return ws.Config{
		SendBuffer:     c.WSSendBuffer,
		WriteWait:      c.WSWriteWait,
		PongWait:       c.WSPongWait,
		PingPeriod:     c.WSPingPeriod,
		MaxMessageSize: c.WSMaxMessageSize,
	}
}

// Level maps LogLevel onto a slog level, defaulting to info
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
