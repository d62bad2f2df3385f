package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	key := participantKey(p.ID, p.Name)

	// The previous version tells us which index entries went stale
	prev, err := s.getParticipantByKey(ctx, key)
	if err != nil && !errors.Is(err, model.ErrParticipantNotFound) {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.ParticipantTTL)
	pipe.SAdd(ctx, roomIndexKey(p.Room), key)
	expire(ctx, pipe, roomIndexKey(p.Room), s.cfg.ParticipantTTL)
	pipe.SAdd(ctx, participantsIndexKey(), key)
	if prev != nil {
		if prev.Room != p.Room {
			pipe.SRem(ctx, roomIndexKey(prev.Room), key)
		}
		if prev.Connected() && prev.ChannelID != p.ChannelID {
			pipe.Del(ctx, channelIndexKey(prev.ChannelID))
		}
	}
	if p.Connected() {
		pipe.Set(ctx, channelIndexKey(p.ChannelID), key, s.cfg.ParticipantTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID, name string) (*model.Participant, error) {
	return s.getParticipantByKey(ctx, participantKey(id, name))
}

func (s *Storage) GetParticipantByChannel(ctx context.Context, channelID model.ChannelID) (*model.Participant, error) {
	if channelID == "" {
		return nil, model.ErrParticipantNotFound
	}

	key, err := s.client.Get(ctx, channelIndexKey(channelID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	p, err := s.getParticipantByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	// The index may lag behind a reconnect that already moved the record on
	if p.ChannelID != channelID {
		return nil, model.ErrParticipantNotFound
	}
	return p, nil
}

func (s *Storage) ListParticipantsByRoom(ctx context.Context, room model.Room) ([]*model.Participant, error) {
	participants, err := s.participantsInSet(ctx, roomIndexKey(room))
	if err != nil {
		return nil, err
	}

	roster := participants[:0]
	for _, p := range participants {
		if p.Room == room {
			roster = append(roster, p)
		}
	}
	return roster, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	return s.participantsInSet(ctx, participantsIndexKey())
}

func (s *Storage) DeleteParticipant(ctx context.Context, id model.ParticipantID, name string) error {
	key := participantKey(id, name)

	p, err := s.getParticipantByKey(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, roomIndexKey(p.Room), key)
	pipe.SRem(ctx, participantsIndexKey(), key)
	if p.Connected() {
		pipe.Del(ctx, channelIndexKey(p.ChannelID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) getParticipantByKey(ctx context.Context, key string) (*model.Participant, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	var p model.Participant
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// expire refreshes a key's TTL; a zero TTL keeps the key forever, since
// EXPIRE with 0 would delete it
func expire(ctx context.Context, pipe redis.Pipeliner, key string, ttl time.Duration) {
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
}

// participantsInSet loads every participant document referenced by an index
// SET and prunes members whose document has expired
func (s *Storage) participantsInSet(ctx context.Context, indexKey string) ([]*model.Participant, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Participant{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0, len(values))
	var stale []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			// Expired or deleted since the index was read
			stale = append(stale, keys[i])
			continue
		}
		var p model.Participant
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			continue // Skip invalid data
		}
		participants = append(participants, &p)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, indexKey, stale...).Err(); err != nil {
			return nil, err
		}
	}

	return participants, nil
}

// Vote operations

func (s *Storage) SaveVote(ctx context.Context, v *model.Vote) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	key := votesKey(v.Room)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	expire(ctx, pipe, key, s.cfg.VoteTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListVotesByRoom(ctx context.Context, room model.Room) ([]*model.Vote, error) {
	values, err := s.client.LRange(ctx, votesKey(room), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	votes := make([]*model.Vote, 0, len(values))
	for _, val := range values {
		var v model.Vote
		if err := json.Unmarshal([]byte(val), &v); err != nil {
			continue
		}
		if v.Room == room {
			votes = append(votes, &v)
		}
	}
	return votes, nil
}
