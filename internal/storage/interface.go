//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_storage.go -package=mocks
package storage

import (
	"context"

	"github.com/mcoot/scrumpoker/internal/model"
)

// Storage is the participant directory: durable keyed records for participants
// and their votes. Reads are not guaranteed to observe earlier writes made by
// distinct calls, so callers must tolerate eventually-consistent scans.
type Storage interface {
	// Participant operations
	SaveParticipant(ctx context.Context, p *model.Participant) error
	GetParticipant(ctx context.Context, id model.ParticipantID, name string) (*model.Participant, error)
	// GetParticipantByChannel returns the first participant bound to the channel
	GetParticipantByChannel(ctx context.Context, channelID model.ChannelID) (*model.Participant, error)
	// ListParticipantsByRoom returns the room roster in no particular order
	ListParticipantsByRoom(ctx context.Context, room model.Room) ([]*model.Participant, error)
	ListParticipants(ctx context.Context) ([]*model.Participant, error)
	DeleteParticipant(ctx context.Context, id model.ParticipantID, name string) error

	// Vote operations
	SaveVote(ctx context.Context, v *model.Vote) error
	ListVotesByRoom(ctx context.Context, room model.Room) ([]*model.Vote, error)
}
