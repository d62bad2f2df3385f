package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidCardValue is returned when a card value is neither a number nor a string
var ErrInvalidCardValue = errors.New("card value must be a number or a string")

// CardValue is a numeric or symbolic estimate kept as its JSON token,
// so 0 stays a real value and is echoed back unchanged.
type CardValue string

// NumberCard returns the card value for a JSON number literal such as "5" or "0.5"
func NumberCard(n string) CardValue {
	return CardValue(n)
}

// SymbolCard returns the card value for a symbolic card such as "?"
func SymbolCard(s string) CardValue {
	b, _ := json.Marshal(s)
	return CardValue(b)
}

// Empty reports whether the value carries no estimate (unset or an empty string)
func (c CardValue) Empty() bool {
	return c == "" || c == `""`
}

// MarshalJSON writes the raw token
func (c CardValue) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return []byte(c), nil
}

// UnmarshalJSON accepts a JSON number or string
func (c *CardValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidCardValue
	}
	if string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
	default:
		return ErrInvalidCardValue
	}
	*c = CardValue(data)
	return nil
}

// Vote is one submitted estimate. Votes are never updated or deleted.
type Vote struct {
	ID              string        `json:"id"`
	ParticipantID   ParticipantID `json:"playerId"`
	ParticipantName string        `json:"playerName"`
	Room            Room          `json:"room"`
	CardValue       CardValue     `json:"cardValue"`
	CardTitle       string        `json:"cardTitle"`
	SubmittedAt     time.Time     `json:"timestamp"`
}
