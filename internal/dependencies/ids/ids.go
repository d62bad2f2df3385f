package ids

import "github.com/google/uuid"

// Generator produces opaque unique identifiers
type Generator interface {
	NewID() string
}

// UUIDGenerator issues time-ordered random UUIDs (version 7), so ids sort
// roughly by creation time while staying collision-free under concurrent joins.
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new UUIDv7 string, falling back to a random v4 if the
// clock-sequenced generator fails.
func (g *UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
