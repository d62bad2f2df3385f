package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrumpoker/internal/transport/ws"
)

func TestFrameForLine(t *testing.T) {
	frame, ok, err := frameForLine("/new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ws.ActionNewGame, frame.Action)
	assert.Empty(t, frame.Message)

	frame, ok, err = frameForLine("  lets go  ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ws.ActionSendMessage, frame.Action)
	assert.JSONEq(t, `"lets go"`, string(frame.Message))

	_, ok, err = frameForLine("   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCardValue(t *testing.T) {
	tests := []struct {
		card string
		want string
	}{
		{"5", `5`},
		{"0", `0`},
		{"0.5", `0.5`},
		{"?", `"?"`},
		{"coffee", `"coffee"`},
		{"Inf", `"Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			data, err := json.Marshal(cardValue(tt.card))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestChannelURL(t *testing.T) {
	c := NewClient("http://localhost:8080/")
	assert.Equal(t, "ws://localhost:8080/ws?id=P1&name=Alice+B", c.ChannelURL("P1", "Alice B"))

	c = NewClient("https://poker.example.com")
	assert.Equal(t, "wss://poker.example.com/ws?id=P1&name=Alice", c.ChannelURL("P1", "Alice"))
}

func TestRoomQuery(t *testing.T) {
	assert.Equal(t, "", roomQuery("", "abc"))
	assert.Equal(t, "?roomName=sprint1", roomQuery("sprint1", ""))
	assert.Equal(t, "?roomName=sprint1&roomSecret=abc", roomQuery("sprint1", "abc"))
}

func TestSessionRoundTrip(t *testing.T) {
	c := &Config{SessionFile: filepath.Join(t.TempDir(), "nested", "session.json")}

	empty, err := c.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, Session{}, empty)

	want := Session{PlayerID: "P1", PlayerName: "Alice", RoomName: "sprint1", RoomSecret: "abc"}
	require.NoError(t, c.SaveSession(want))

	got, err := c.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFrameOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("json", &buf)

	out.Status("Connected")
	out.Frame([]byte(`{"action":"player-join","name":"Bob","id":"P2"}`))
	out.Frame([]byte(`hello`))

	assert.Equal(t, "{\"action\":\"player-join\",\"name\":\"Bob\",\"id\":\"P2\"}\nhello\n", buf.String())

	buf.Reset()
	out = NewOutput("text", &buf)
	out.Frame([]byte(`{"action":"player-vote","name":"Bob","id":"P2","cardValue":5,"cardTitle":"5"}`))
	assert.Contains(t, buf.String(), "Bob voted 5")
}
