package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/scrumpoker/internal/dependencies/clock"
	"github.com/mcoot/scrumpoker/internal/dependencies/ids"
	"github.com/mcoot/scrumpoker/internal/services/broadcast"
	"github.com/mcoot/scrumpoker/internal/services/presence"
	"github.com/mcoot/scrumpoker/internal/services/room"
	"github.com/mcoot/scrumpoker/internal/storage"
	badgerstorage "github.com/mcoot/scrumpoker/internal/storage/badger"
	"github.com/mcoot/scrumpoker/internal/storage/memory"
	redisstorage "github.com/mcoot/scrumpoker/internal/storage/redis"
	"github.com/mcoot/scrumpoker/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeBadger = "badger"
)

// App contains all wired application components. Every handle is built
// once here and never replaced.
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Channels
	Registry       *ws.Registry
	ChannelHandler *ws.Handler

	// Services
	Resolver        *room.Resolver
	Dispatcher      *broadcast.Dispatcher
	PresenceService *presence.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "badger")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BadgerConfig holds embedded store settings (optional; defaults to in-memory)
	BadgerConfig *badgerstorage.Config
	// WSConfig holds channel settings (optional)
	// If zero value, defaults to ws.DefaultConfig()
	WSConfig ws.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = redisStore
	case StorageTypeBadger:
		badgerCfg := badgerstorage.DefaultConfig()
		if cfg.BadgerConfig != nil {
			badgerCfg = *cfg.BadgerConfig
		}
		badgerStore, err := badgerstorage.Open(badgerCfg)
		if err != nil {
			return nil, err
		}
		store = badgerStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'badger'")
	}

	// Use default channel config if not provided
	wsCfg := cfg.WSConfig
	if wsCfg.SendBuffer == 0 {
		wsCfg = ws.DefaultConfig()
	}

	logger.Info("storage ready", slog.String("type", storageType))
	return newWithDependencies(store, clock.New(), ids.New(), nil, wsCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing).
// A nil transport delivers broadcasts through the channel registry.
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	gen ids.Generator,
	transport broadcast.Transport,
	wsCfg ws.Config,
	logger *slog.Logger,
) *App {
	registry := ws.NewRegistry(logger)
	if transport == nil {
		transport = registry
	}

	resolver := room.New(store)
	dispatcher := broadcast.New(transport, logger)
	presenceService := presence.New(store, resolver, dispatcher, clk, gen, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		IDs:             gen,
		Registry:        registry,
		ChannelHandler:  ws.NewHandler(presenceService, registry, gen, wsCfg, logger),
		Resolver:        resolver,
		Dispatcher:      dispatcher,
		PresenceService: presenceService,
	}
}

// Close drops every live channel and releases the storage backend
func (a *App) Close() error {
	a.Registry.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
