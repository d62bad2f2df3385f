package model

import "encoding/json"

// Action names the kind of presence notification pushed to a channel
type Action string

const (
	ActionPlayerJoin       Action = "player-join"
	ActionPlayerVote       Action = "player-vote"
	ActionNewRound         Action = "new"
	ActionPlayerDisconnect Action = "player-disconnect"
)

// Notification is the payload fanned out to a room
type Notification struct {
	Action    Action        `json:"action"`
	Name      string        `json:"name"`
	ID        ParticipantID `json:"id"`
	CardValue *CardValue    `json:"cardValue,omitempty"`
	CardTitle string        `json:"cardTitle,omitempty"`
}

// NewNotification builds a notification about the given participant
func NewNotification(action Action, p Participant) Notification {
	return Notification{Action: action, Name: p.Name, ID: p.ID}
}

// Encode serializes the notification for the wire
func (n Notification) Encode() ([]byte, error) {
	return json.Marshal(n)
}
