package ws

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/scrumpoker/internal/model"
)

var (
	// ErrChannelGone is returned when sending to a channel that is not connected
	ErrChannelGone = errors.New("channel is not connected")
	// ErrChannelBackpressure is returned when a channel's send queue is full
	ErrChannelBackpressure = errors.New("channel send queue is full")
)

// Config holds per-connection settings
type Config struct {
	// SendBuffer is the number of outgoing messages queued per channel
	SendBuffer int
	// WriteWait is the time allowed to write a message to the peer
	WriteWait time.Duration
	// PongWait is the time allowed to read the next pong from the peer
	PongWait time.Duration
	// PingPeriod must be shorter than PongWait
	PingPeriod time.Duration
	// MaxMessageSize caps inbound frames
	MaxMessageSize int64
}

// DefaultConfig returns sensible defaults for channel connections
func DefaultConfig() Config {
	return Config{
		SendBuffer:     256,
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 32 * 1024,
	}
}

// Client is one live channel
type Client struct {
	channelID   model.ChannelID
	conn        *websocket.Conn
	send        chan []byte
	cfg         Config
	connectedAt time.Time
	logger      *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewClient wraps an upgraded connection
func NewClient(channelID model.ChannelID, conn *websocket.Conn, cfg Config, logger *slog.Logger) *Client {
	return &Client{
		channelID:   channelID,
		conn:        conn,
		send:        make(chan []byte, cfg.SendBuffer),
		cfg:         cfg,
		connectedAt: time.Now(),
		logger:      logger.With(slog.String("channel_id", string(channelID))),
	}
}

// ChannelID returns the id the channel was registered under
func (c *Client) ChannelID() model.ChannelID {
	return c.channelID
}

// TrySend queues payload without blocking
func (c *Client) TrySend(payload []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrChannelGone
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrChannelBackpressure
	}
}

// Close stops the write pump and releases the connection. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send queue onto the connection and keeps it alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("channel write failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump hands every inbound frame to handle until the peer goes away
func (c *Client) readPump(handle func(data []byte)) {
	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("channel closed unexpectedly", slog.Any("error", err))
			}
			return
		}
		handle(data)
	}
}
