package ws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/testutil"
)

func newTestClient(channelID string, buffer int) *Client {
	cfg := DefaultConfig()
	cfg.SendBuffer = buffer
	return NewClient(model.ChannelID(channelID), nil, cfg, testutil.NopLogger())
}

func TestRegistrySendUnknownChannel(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())

	err := registry.Send(context.Background(), "missing", []byte("x"))
	req.ErrorIs(err, ErrChannelGone)
}

func TestRegistrySendQueuesPayload(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())
	client := newTestClient("c1", 4)
	registry.Register(client)

	req.NoError(registry.Send(context.Background(), "c1", []byte("hello")))
	req.Equal([]byte("hello"), <-client.send)
	req.Equal(1, registry.Count())
}

func TestRegistrySendBackpressure(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())
	registry.Register(newTestClient("c1", 1))

	req.NoError(registry.Send(context.Background(), "c1", []byte("a")))
	req.ErrorIs(registry.Send(context.Background(), "c1", []byte("b")), ErrChannelBackpressure)
}

func TestRegistryUnregisterClosesClient(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())
	client := newTestClient("c1", 1)
	registry.Register(client)

	registry.Unregister(client)

	req.Zero(registry.Count())
	req.ErrorIs(client.TrySend([]byte("x")), ErrChannelGone)
	req.ErrorIs(registry.Send(context.Background(), "c1", []byte("x")), ErrChannelGone)
}

func TestRegistryUnregisterStaleClientKeepsReplacement(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())
	first := newTestClient("c1", 1)
	second := newTestClient("c1", 1)

	registry.Register(first)
	registry.Register(second)
	registry.Unregister(first)

	req.Equal(1, registry.Count())
	req.NoError(registry.Send(context.Background(), "c1", []byte("x")))
}

func TestRegistryCloseAll(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(testutil.NopLogger())
	a := newTestClient("a", 1)
	registry.Register(a)
	registry.Register(newTestClient("b", 1))

	registry.CloseAll()

	req.Zero(registry.Count())
	req.ErrorIs(a.TrySend([]byte("x")), ErrChannelGone)
}

func TestClientCloseIsIdempotent(t *testing.T) {
	client := newTestClient("c1", 1)
	client.Close()
	require.NotPanics(t, client.Close)
}
