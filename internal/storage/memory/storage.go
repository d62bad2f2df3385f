package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	participants map[participantKey]model.Participant
	votes        map[model.Room][]model.Vote
}

type participantKey struct {
	id   model.ParticipantID
	name string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		participants: make(map[participantKey]model.Participant),
		votes:        make(map[model.Room][]model.Vote),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[participantKey{p.ID, p.Name}] = *p
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID, name string) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[participantKey{id, name}]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return &p, nil
}

func (s *Storage) GetParticipantByChannel(ctx context.Context, channelID model.ChannelID) (*model.Participant, error) {
	matches := s.filter(func(p model.Participant) bool {
		return channelID != "" && p.ChannelID == channelID
	})
	if len(matches) == 0 {
		return nil, model.ErrParticipantNotFound
	}
	return matches[0], nil
}

func (s *Storage) ListParticipantsByRoom(ctx context.Context, room model.Room) ([]*model.Participant, error) {
	return s.filter(func(p model.Participant) bool {
		return p.Room == room
	}), nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	return s.filter(func(model.Participant) bool { return true }), nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, id model.ParticipantID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, participantKey{id, name})
	return nil
}

// filter returns copies of matching participants, ordered by id so that
// "first match" is deterministic
func (s *Storage) filter(keep func(model.Participant) bool) []*model.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Participant, 0)
	for _, p := range s.participants {
		if keep(p) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Vote operations

func (s *Storage) SaveVote(ctx context.Context, v *model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[v.Room] = append(s.votes[v.Room], *v)
	return nil
}

func (s *Storage) ListVotesByRoom(ctx context.Context, room model.Room) ([]*model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	votes := s.votes[room]
	out := make([]*model.Vote, len(votes))
	for i := range votes {
		v := votes[i]
		out[i] = &v
	}
	return out, nil
}
