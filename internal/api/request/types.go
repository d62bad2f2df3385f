package request

import "github.com/mcoot/scrumpoker/internal/model"

// JoinRequest is the request body for entering a room
type JoinRequest struct {
	PlayerName string  `json:"playerName"`
	RoomName   string  `json:"roomName"`
	RoomSecret *string `json:"roomSecret,omitempty"`
}

// VoteRequest is the request body for submitting a vote.
// CardValue is a pointer so an absent value is distinguishable from 0.
type VoteRequest struct {
	PlayerID   string           `json:"playerId"`
	PlayerName string           `json:"playerName"`
	RoomName   string           `json:"roomName"`
	RoomSecret *string          `json:"roomSecret,omitempty"`
	CardValue  *model.CardValue `json:"cardValue"`
	CardTitle  string           `json:"cardTitle"`
}
