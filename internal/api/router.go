package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/scrumpoker/internal/api/apierr"
	"github.com/mcoot/scrumpoker/internal/api/handler"
	"github.com/mcoot/scrumpoker/internal/middleware"
	"github.com/mcoot/scrumpoker/internal/services/presence"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Presence *presence.Service
	// Channels serves WebSocket upgrades at /ws
	Channels http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Presence)
	voteHandler := handler.NewVoteHandler(cfg.Presence)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, jsonPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes
	api.HandleFunc("/players", playerHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)

	// Vote routes
	api.HandleFunc("/votes", voteHandler.Vote).Methods(http.MethodPost)
	api.HandleFunc("/votes", voteHandler.List).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Channel upgrades
	if cfg.Channels != nil {
		channels := r.PathPrefix("/ws").Subrouter()
		channels.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
		channels.Use(loggingMiddleware)
		channels.Handle("", cfg.Channels).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// jsonPanicHandler answers a recovered panic with the API's error body
func jsonPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
