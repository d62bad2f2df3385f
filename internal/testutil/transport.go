package testutil

import (
	"context"
	"sync"

	"github.com/mcoot/scrumpoker/internal/model"
)

// RecordingTransport keeps every payload sent to each channel.
// Channels registered with Fail return the given error instead.
type RecordingTransport struct {
	mu     sync.Mutex
	sent   map[model.ChannelID][][]byte
	failed map[model.ChannelID]error
}

// NewRecordingTransport creates an empty RecordingTransport
func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{
		sent:   make(map[model.ChannelID][][]byte),
		failed: make(map[model.ChannelID]error),
	}
}

// Send records the payload for channelID
func (t *RecordingTransport) Send(_ context.Context, channelID model.ChannelID, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.failed[channelID]; ok {
		return err
	}
	t.sent[channelID] = append(t.sent[channelID], append([]byte(nil), payload...))
	return nil
}

// Fail makes every later send to channelID return err
func (t *RecordingTransport) Fail(channelID model.ChannelID, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed[channelID] = err
}

// Sent returns the payloads delivered to channelID as strings
func (t *RecordingTransport) Sent(channelID model.ChannelID) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.sent[channelID]))
	for _, p := range t.sent[channelID] {
		out = append(out, string(p))
	}
	return out
}

// Reset forgets everything recorded so far
func (t *RecordingTransport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = make(map[model.ChannelID][][]byte)
}
