package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomNormalizesAbsentSecret(t *testing.T) {
	empty := ""
	abc := "abc"

	absent := NewRoom("sprint1", nil)
	blank := NewRoom("sprint1", &empty)
	secret := NewRoom("sprint1", &abc)

	assert.Equal(t, absent, blank)
	assert.Equal(t, absent.Key(), blank.Key())
	assert.NotEqual(t, absent, secret)
	assert.NotEqual(t, absent.Key(), secret.Key())
	assert.False(t, absent.HasSecret())
	assert.True(t, secret.HasSecret())
}

func TestRoomKeyDoesNotCollideAcrossFields(t *testing.T) {
	a := Room{Name: "ab", Secret: "c"}
	b := Room{Name: "a", Secret: "bc"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestRoomKeyDoesNotCollideOnSeparatorBytes(t *testing.T) {
	a := Room{Name: "a\x00", Secret: "b"}
	b := Room{Name: "a", Secret: "\x00b"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestIdentityKeyDoesNotCollideOnSeparators(t *testing.T) {
	assert.NotEqual(t, IdentityKey("a:b", "c"), IdentityKey("a", "b:c"))
	assert.NotEqual(t, IdentityKey("a", ""), IdentityKey("", "a"))
	assert.Equal(t, IdentityKey("p1", "Alice"), IdentityKey("p1", "Alice"))
}

func TestCardValueJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CardValue
		empty   bool
		wantErr bool
	}{
		{name: "zero", input: `0`, want: "0"},
		{name: "integer", input: `5`, want: "5"},
		{name: "fraction", input: `0.5`, want: "0.5"},
		{name: "symbol", input: `"?"`, want: `"?"`},
		{name: "empty string", input: `""`, want: `""`, empty: true},
		{name: "boolean", input: `true`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CardValue
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
			assert.Equal(t, tt.empty, c.Empty())

			out, err := json.Marshal(c)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestVoteNotificationEncoding(t *testing.T) {
	card := NumberCard("5")
	n := NewNotification(ActionPlayerVote, Participant{ID: "P1", Name: "Alice"})
	n.CardValue = &card
	n.CardTitle = "5"

	data, err := n.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"player-vote","name":"Alice","id":"P1","cardValue":5,"cardTitle":"5"}`, string(data))
}

func TestPresenceNotificationOmitsCard(t *testing.T) {
	n := NewNotification(ActionPlayerDisconnect, Participant{ID: "P2", Name: "Bob"})

	data, err := n.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"player-disconnect","name":"Bob","id":"P2"}`, string(data))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("playerName", "roomName")
	assert.Equal(t, "Error! Required JSON fields missing: playerName, roomName", err.Error())
}
