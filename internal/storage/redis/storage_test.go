package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.DirectorySuite
	mini  *miniredis.Miniredis
	redis *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ParticipantTTL = time.Hour
	cfg.VoteTTL = 2 * time.Hour

	s.redis = NewWithClient(client, cfg)
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

var room = model.Room{Name: "sprint1", Secret: "abc"}

func (s *StorageSuite) TestParticipantTTL() {
	p := &model.Participant{ID: "p1", Name: "Alice", Room: room, ChannelID: "c1"}
	s.Require().NoError(s.redis.SaveParticipant(s.Ctx, p))

	s.Equal(time.Hour, s.mini.TTL(participantKey(p.ID, p.Name)))
	s.Equal(time.Hour, s.mini.TTL(channelIndexKey(p.ChannelID)))
	s.Equal(time.Hour, s.mini.TTL(roomIndexKey(room)))
}

func (s *StorageSuite) TestExpiredParticipantDropsOutOfRoster() {
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room})
	s.mini.FastForward(30 * time.Minute)
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p2", Name: "Bob", Room: room})
	s.mini.FastForward(45 * time.Minute)

	roster, err := s.redis.ListParticipantsByRoom(s.Ctx, room)
	s.Require().NoError(err)
	s.Require().Len(roster, 1)
	s.Equal(model.ParticipantID("p2"), roster[0].ID)
}

func (s *StorageSuite) TestStaleRoomIndexEntryIsSkipped() {
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room})
	s.mini.Del(participantKey("p1", "Alice"))

	roster, err := s.redis.ListParticipantsByRoom(s.Ctx, room)
	s.Require().NoError(err)
	s.Empty(roster)
}

func (s *StorageSuite) TestRoomChangeMovesIndexEntry() {
	other := model.Room{Name: "sprint2"}
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room})
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: other})

	// SREM of the last member removes the set
	s.False(s.mini.Exists(roomIndexKey(room)))

	roster, err := s.redis.ListParticipantsByRoom(s.Ctx, other)
	s.Require().NoError(err)
	s.Len(roster, 1)
}

func (s *StorageSuite) TestSecretNotInKeys() {
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room})

	for _, key := range s.mini.Keys() {
		s.NotContains(key, room.Secret+":")
		s.NotContains(key, ":"+room.Name)
	}
}

func (s *StorageSuite) TestVoteTTL() {
	v := &model.Vote{ID: "v1", Room: room, CardValue: model.NumberCard("3"), CardTitle: "3"}
	s.Require().NoError(s.redis.SaveVote(s.Ctx, v))

	s.Equal(2*time.Hour, s.mini.TTL(votesKey(room)))
}

func (s *StorageSuite) TestExpiredParticipantsArePrunedFromIndexes() {
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room})
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p2", Name: "Bob", Room: model.Room{Name: "sprint2"}})
	s.mini.FastForward(30 * time.Minute)
	_ = s.redis.SaveParticipant(s.Ctx, &model.Participant{ID: "p3", Name: "Carol", Room: room})
	s.mini.FastForward(45 * time.Minute)

	// Alice and Bob have expired but are still referenced by the indexes
	members, err := s.mini.Members(participantsIndexKey())
	s.Require().NoError(err)
	s.Len(members, 3)

	all, err := s.redis.ListParticipants(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)

	members, err = s.mini.Members(participantsIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{participantKey("p3", "Carol")}, members)

	roster, err := s.redis.ListParticipantsByRoom(s.Ctx, room)
	s.Require().NoError(err)
	s.Len(roster, 1)

	members, err = s.mini.Members(roomIndexKey(room))
	s.Require().NoError(err)
	s.Equal([]string{participantKey("p3", "Carol")}, members)
}

func (s *StorageSuite) TestZeroTTLKeepsEntries() {
	cfg := DefaultConfig()
	cfg.ParticipantTTL = 0
	cfg.VoteTTL = 0
	store := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer func() { _ = store.Close() }()

	s.Require().NoError(store.SaveParticipant(s.Ctx, &model.Participant{ID: "p1", Name: "Alice", Room: room, ChannelID: "c1"}))
	s.Require().NoError(store.SaveParticipant(s.Ctx, &model.Participant{ID: "p2", Name: "Bob", Room: room}))
	s.Require().NoError(store.SaveVote(s.Ctx, &model.Vote{ID: "v1", Room: room, CardValue: model.NumberCard("3"), CardTitle: "3"}))

	roster, err := store.ListParticipantsByRoom(s.Ctx, room)
	s.Require().NoError(err)
	s.Len(roster, 2)

	votes, err := store.ListVotesByRoom(s.Ctx, room)
	s.Require().NoError(err)
	s.Len(votes, 1)

	s.Zero(s.mini.TTL(roomIndexKey(room)))
	s.Zero(s.mini.TTL(votesKey(room)))
}
