package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mcoot/scrumpoker/internal/api/apierr"
	"github.com/mcoot/scrumpoker/internal/dependencies/ids"
	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/services/presence"
)

// Inbound frame actions
const (
	ActionNewGame     = "newgame"
	ActionSendMessage = "sendmessage"
)

// Frame is an inbound message from a channel
type Frame struct {
	Action  string          `json:"action"`
	Message json.RawMessage `json:"message,omitempty"`
}

// Handler upgrades GET /ws?id=&name= into a channel for a registered participant
type Handler struct {
	presence *presence.Service
	registry *Registry
	ids      ids.Generator
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new channel Handler
func NewHandler(presence *presence.Service, registry *Registry, ids ids.Generator, cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		presence: presence,
		registry: registry,
		ids:      ids,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP binds the channel in the directory before upgrading, so a
// failed connect is reported as a plain HTTP status
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(r.URL.Query().Get("id"))
	name := r.URL.Query().Get("name")
	channelID := model.ChannelID(h.ids.NewID())

	if _, err := h.presence.Connect(r.Context(), id, name, channelID); err != nil {
		h.logger.Warn("channel connect rejected",
			slog.String("participant_id", string(id)),
			slog.Any("error", err))
		apierr.WriteError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The directory keeps the unused channel id until the next connect
		// overwrites it; sends to it fail as gone.
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(channelID, conn, h.cfg, h.logger)
	h.registry.Register(client)
	go client.writePump()

	// Outlive the request so the disconnect still runs after the peer hangs up
	ctx := context.WithoutCancel(r.Context())
	client.readPump(func(data []byte) {
		h.route(ctx, channelID, data)
	})

	h.registry.Unregister(client)
	if _, err := h.presence.Disconnect(ctx, channelID); err != nil && !errors.Is(err, model.ErrParticipantNotFound) {
		h.logger.Error("disconnect failed",
			slog.String("channel_id", string(channelID)),
			slog.Any("error", err))
	}
}

// route dispatches one inbound frame by its action
func (h *Handler) route(ctx context.Context, channelID model.ChannelID, data []byte) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		h.logger.Warn("bad frame", slog.String("channel_id", string(channelID)), slog.Any("error", err))
		return
	}

	var err error
	switch frame.Action {
	case ActionNewGame:
		err = h.presence.NewRound(ctx, channelID)
	case ActionSendMessage:
		err = h.presence.SendMessage(ctx, channelID, frame.Message)
	default:
		h.logger.Debug("unrouted frame",
			slog.String("channel_id", string(channelID)),
			slog.String("action", frame.Action))
		return
	}

	if err != nil {
		h.logger.Warn("frame handling failed",
			slog.String("channel_id", string(channelID)),
			slog.String("action", frame.Action),
			slog.Int("status", apierr.Status(err)),
			slog.Any("error", err))
	}
}
