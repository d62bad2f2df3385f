package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/services/broadcast"
)

// Registry tracks live channels by id and delivers payloads to them
type Registry struct {
	mu      sync.RWMutex
	clients map[model.ChannelID]*Client
	logger  *slog.Logger
}

// Ensure Registry can carry broadcasts
var _ broadcast.Transport = (*Registry)(nil)

// NewRegistry creates an empty Registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		clients: make(map[model.ChannelID]*Client),
		logger:  logger.With(slog.String("component", "ws")),
	}
}

// Register adds a client, replacing any previous client with the same id
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	if old, ok := r.clients[client.channelID]; ok && old != client {
		old.Close()
	}
	r.clients[client.channelID] = client
	count := len(r.clients)
	r.mu.Unlock()

	r.logger.Info("channel registered",
		slog.String("channel_id", string(client.channelID)),
		slog.Int("total_channels", count))
}

// Unregister removes a client and closes it
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	current, ok := r.clients[client.channelID]
	if ok && current == client {
		delete(r.clients, client.channelID)
	}
	count := len(r.clients)
	r.mu.Unlock()

	client.Close()
	if ok && current == client {
		r.logger.Info("channel unregistered",
			slog.String("channel_id", string(client.channelID)),
			slog.Duration("connection_duration", time.Since(client.connectedAt)),
			slog.Int("total_channels", count))
	}
}

// Send queues payload on the channel. It never blocks on a slow peer.
func (r *Registry) Send(_ context.Context, channelID model.ChannelID, payload []byte) error {
	r.mu.RLock()
	client, ok := r.clients[channelID]
	r.mu.RUnlock()
	if !ok {
		return ErrChannelGone
	}
	return client.TrySend(payload)
}

// Count returns the number of live channels
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// CloseAll closes every channel, used on shutdown
func (r *Registry) CloseAll() {
	r.mu.Lock()
	count := len(r.clients)
	for id, client := range r.clients {
		client.Close()
		delete(r.clients, id)
	}
	r.mu.Unlock()
	r.logger.Info("channels closed", slog.Int("disconnected_channels", count))
}
