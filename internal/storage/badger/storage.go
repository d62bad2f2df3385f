package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// Config holds settings for the embedded store
type Config struct {
	// Path is the data directory; empty runs the store in memory
	Path string

	ParticipantTTL time.Duration
	VoteTTL        time.Duration
}

// DefaultConfig returns sensible defaults for the embedded store
func DefaultConfig() Config {
	return Config{
		Path:           "",
		ParticipantTTL: 24 * time.Hour,
		VoteTTL:        7 * 24 * time.Hour,
	}
}

const (
	participantPrefix = "participant:"
	votePrefix        = "vote:"
)

// Storage is a Badger-backed implementation of the storage interface.
// Room and channel lookups are prefix scans filtered on the decoded record.
type Storage struct {
	db  *badger.DB
	cfg Config
}

// Open opens (or creates) the Badger database described by cfg
func Open(cfg Config) (*Storage, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLoggingLevel(badger.ERROR)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return New(db, cfg), nil
}

// New wraps an already opened database
func New(db *badger.DB, cfg Config) *Storage {
	return &Storage{db: db, cfg: cfg}
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func participantKey(id model.ParticipantID, name string) []byte {
	return []byte(participantPrefix + model.IdentityKey(id, name))
}

// voteKey orders a room's votes by id; ids are time-ordered
func voteKey(room model.Room, id string) []byte {
	return []byte(votePrefix + room.Key() + ":" + id)
}

func votePrefixFor(room model.Room) []byte {
	return []byte(votePrefix + room.Key() + ":")
}

// Participant operations

func (s *Storage) SaveParticipant(ctx context.Context, p *model.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(withTTL(badger.NewEntry(participantKey(p.ID, p.Name), data), s.cfg.ParticipantTTL))
	})
}

func (s *Storage) GetParticipant(ctx context.Context, id model.ParticipantID, name string) (*model.Participant, error) {
	var p model.Participant

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(id, name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, model.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) GetParticipantByChannel(ctx context.Context, channelID model.ChannelID) (*model.Participant, error) {
	if channelID == "" {
		return nil, model.ErrParticipantNotFound
	}

	var found *model.Participant
	err := s.scanParticipants(func(p *model.Participant) bool {
		if p.ChannelID == channelID {
			found = p
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, model.ErrParticipantNotFound
	}
	return found, nil
}

func (s *Storage) ListParticipantsByRoom(ctx context.Context, room model.Room) ([]*model.Participant, error) {
	roster := make([]*model.Participant, 0)
	err := s.scanParticipants(func(p *model.Participant) bool {
		if p.Room == room {
			roster = append(roster, p)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	all := make([]*model.Participant, 0)
	err := s.scanParticipants(func(p *model.Participant) bool {
		all = append(all, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, id model.ParticipantID, name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(participantKey(id, name))
	})
}

// scanParticipants walks every participant record in key order until visit returns false
func (s *Storage) scanParticipants(visit func(*model.Participant) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		return scan(txn, []byte(participantPrefix), func(val []byte) (bool, error) {
			var p model.Participant
			if err := json.Unmarshal(val, &p); err != nil {
				return false, fmt.Errorf("decode participant: %w", err)
			}
			return visit(&p), nil
		})
	})
}

// Vote operations

func (s *Storage) SaveVote(ctx context.Context, v *model.Vote) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal vote: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(withTTL(badger.NewEntry(voteKey(v.Room, v.ID), data), s.cfg.VoteTTL))
	})
}

func (s *Storage) ListVotesByRoom(ctx context.Context, room model.Room) ([]*model.Vote, error) {
	votes := make([]*model.Vote, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return scan(txn, votePrefixFor(room), func(val []byte) (bool, error) {
			var v model.Vote
			if err := json.Unmarshal(val, &v); err != nil {
				return false, fmt.Errorf("decode vote: %w", err)
			}
			if v.Room == room {
				votes = append(votes, &v)
			}
			return true, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func scan(txn *badger.Txn, prefix []byte, visit func(val []byte) (bool, error)) error {
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
	defer it.Close()

	for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		if !bytes.HasPrefix(item.Key(), prefix) {
			break
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		more, err := visit(val)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

func withTTL(e *badger.Entry, ttl time.Duration) *badger.Entry {
	if ttl > 0 {
		return e.WithTTL(ttl)
	}
	return e
}
