package room

import (
	"context"
	"fmt"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// Resolver turns a room into its current roster
type Resolver struct {
	storage storage.Storage
}

// New creates a new Resolver
func New(storage storage.Storage) *Resolver {
	return &Resolver{
		storage: storage,
	}
}

// Resolve returns every participant recorded in the room, connected or not.
// The directory is read on every call; an empty roster is not an error.
func (r *Resolver) Resolve(ctx context.Context, room model.Room) ([]*model.Participant, error) {
	roster, err := r.storage.ListParticipantsByRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("resolve room: %w", err)
	}
	return roster, nil
}
