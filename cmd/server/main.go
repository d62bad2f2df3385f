package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/scrumpoker/internal/api"
	"github.com/mcoot/scrumpoker/internal/config"
	"github.com/mcoot/scrumpoker/internal/factory"
)

func main() {
	// Set up logging with JSON output
	bootLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	redisCfg := cfg.Redis()
	badgerCfg := cfg.Badger()
	app, err := factory.New(factory.Config{
		Logger:       logger,
		StorageType:  cfg.StorageType,
		RedisConfig:  &redisCfg,
		BadgerConfig: &badgerCfg,
		WSConfig:     cfg.WS(),
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close error", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Presence: app.PresenceService,
		Channels: app.ChannelHandler,
	})

	server := api.NewServer(router, cfg.Server(), logger)
	server.OnShutdown(app.Registry.CloseAll)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}
