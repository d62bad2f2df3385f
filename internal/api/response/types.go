package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/scrumpoker/internal/model"
)

// Success messages
const (
	MessagePlayerJoined = "Player entered the game!"
	MessageVoteAccepted = "Vote accepted!"
)

// MessageResponse is a bare acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// JoinResponse is the response for entering a room
type JoinResponse struct {
	Message  string `json:"message"`
	PlayerID string `json:"playerId"`
}

// Participant represents a participant in API responses
type Participant struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"playerName"`
	RoomName     string    `json:"roomName"`
	RoomSecret   string    `json:"roomSecret,omitempty"`
	ConnectionID string    `json:"connectionId,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// ParticipantFromModel converts a model.Participant to a response Participant
func ParticipantFromModel(p *model.Participant) Participant {
	return Participant{
		ID:           string(p.ID),
		PlayerName:   p.Name,
		RoomName:     p.Room.Name,
		RoomSecret:   p.Room.Secret,
		ConnectionID: string(p.ChannelID),
		JoinedAt:     p.JoinedAt,
	}
}

// ParticipantsFromModel converts a roster, keeping its order
func ParticipantsFromModel(ps []*model.Participant) []Participant {
	return lo.Map(ps, func(p *model.Participant, _ int) Participant {
		return ParticipantFromModel(p)
	})
}

// Vote represents a recorded vote
type Vote struct {
	ID         string          `json:"id"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	RoomName   string          `json:"roomName"`
	RoomSecret string          `json:"roomSecret,omitempty"`
	CardValue  model.CardValue `json:"cardValue"`
	CardTitle  string          `json:"cardTitle"`
	Timestamp  time.Time       `json:"timestamp"`
}

// VotesFromModel converts a vote history, keeping its order
func VotesFromModel(vs []*model.Vote) []Vote {
	return lo.Map(vs, func(v *model.Vote, _ int) Vote {
		return Vote{
			ID:         v.ID,
			PlayerID:   string(v.ParticipantID),
			PlayerName: v.ParticipantName,
			RoomName:   v.Room.Name,
			RoomSecret: v.Room.Secret,
			CardValue:  v.CardValue,
			CardTitle:  v.CardTitle,
			Timestamp:  v.SubmittedAt,
		}
	})
}
