package model

import "time"

// ParticipantID is the opaque identifier assigned at join time
type ParticipantID string

// ChannelID identifies one live push channel
type ChannelID string

// Participant is one player that has joined a room
type Participant struct {
	ID        ParticipantID `json:"id"`
	Name      string        `json:"playerName"`
	Room      Room          `json:"room"`
	ChannelID ChannelID     `json:"connectionId,omitempty"`
	JoinedAt  time.Time     `json:"joinedAt"`
}

// IdentityKey returns the storage key for a participant identity. The id is
// client-supplied on lookups, so id and name are digested rather than joined.
func IdentityKey(id ParticipantID, name string) string {
	return digest(string(id), name)
}

// Connected reports whether the participant has completed a channel handshake
func (p Participant) Connected() bool {
	return p.ChannelID != ""
}
