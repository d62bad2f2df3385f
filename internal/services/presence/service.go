package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mcoot/scrumpoker/internal/dependencies/clock"
	"github.com/mcoot/scrumpoker/internal/dependencies/ids"
	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/services/broadcast"
	"github.com/mcoot/scrumpoker/internal/services/room"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// JoinInput is the body of a join request
type JoinInput struct {
	PlayerName string  `json:"playerName" validate:"required"`
	RoomName   string  `json:"roomName" validate:"required"`
	RoomSecret *string `json:"roomSecret"`
}

// VoteInput is the body of a vote request
type VoteInput struct {
	PlayerID   string           `json:"playerId" validate:"required"`
	PlayerName string           `json:"playerName" validate:"required"`
	RoomName   string           `json:"roomName" validate:"required"`
	RoomSecret *string          `json:"roomSecret"`
	CardValue  *model.CardValue `json:"cardValue" validate:"required,card"`
	CardTitle  string           `json:"cardTitle" validate:"required"`
}

// Service implements the participant lifecycle: every event touches the
// directory first, then notifies the rest of the room
type Service struct {
	storage    storage.Storage
	resolver   *room.Resolver
	dispatcher *broadcast.Dispatcher
	clock      clock.Clock
	ids        ids.Generator
	logger     *slog.Logger
}

// New creates a new presence Service
func New(
	storage storage.Storage,
	resolver *room.Resolver,
	dispatcher *broadcast.Dispatcher,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:    storage,
		resolver:   resolver,
		dispatcher: dispatcher,
		clock:      clock,
		ids:        ids,
		logger:     logger.With(slog.String("component", "presence")),
	}
}

// Join registers a participant in a room. The participant has no channel
// until Connect is called, so nobody is notified yet.
func (s *Service) Join(ctx context.Context, in JoinInput) (*model.Participant, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p := &model.Participant{
		ID:       model.ParticipantID(s.ids.NewID()),
		Name:     in.PlayerName,
		Room:     model.NewRoom(in.RoomName, in.RoomSecret),
		JoinedAt: s.clock.Now(),
	}
	if err := s.storage.SaveParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("save participant: %w", err)
	}

	s.logger.Info("participant joined",
		slog.String("participant_id", string(p.ID)),
		slog.String("room", p.Room.Name),
		slog.Bool("secret", p.Room.HasSecret()),
	)
	return p, nil
}

// Connect binds a live channel to a registered participant and announces
// the participant to the rest of the room
func (s *Service) Connect(ctx context.Context, id model.ParticipantID, name string, channelID model.ChannelID) (*model.Participant, error) {
	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, model.NewValidationError(missing...)
	}

	p, err := s.storage.GetParticipant(ctx, id, name)
	if err != nil {
		return nil, err
	}

	p.ChannelID = channelID
	if err := s.storage.SaveParticipant(ctx, p); err != nil {
		return nil, fmt.Errorf("save participant: %w", err)
	}

	// Re-read to learn the room from the directory and confirm the write landed
	confirmed, err := s.storage.GetParticipant(ctx, id, name)
	if errors.Is(err, model.ErrParticipantNotFound) {
		return nil, model.ErrConnectUnconfirmed
	}
	if err != nil {
		return nil, err
	}
	if confirmed.ChannelID != channelID {
		return nil, model.ErrConnectUnconfirmed
	}

	payload, err := model.NewNotification(model.ActionPlayerJoin, *confirmed).Encode()
	if err != nil {
		return nil, err
	}
	if err := s.notify(ctx, confirmed, payload); err != nil {
		return nil, err
	}

	s.logger.Info("participant connected",
		slog.String("participant_id", string(confirmed.ID)),
		slog.String("channel_id", string(channelID)),
	)
	return confirmed, nil
}

// Vote records an estimate and shows it to the rest of the voter's room
func (s *Service) Vote(ctx context.Context, in VoteInput) (*model.Vote, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	voter, err := s.storage.GetParticipant(ctx, model.ParticipantID(in.PlayerID), in.PlayerName)
	if errors.Is(err, model.ErrParticipantNotFound) {
		return nil, fmt.Errorf("%w: %s", model.ErrVoterNotFound, in.PlayerName)
	}
	if err != nil {
		return nil, err
	}
	if !voter.Connected() {
		return nil, fmt.Errorf("%w: %s", model.ErrVoterNotConnected, in.PlayerName)
	}

	vote := &model.Vote{
		ID:              s.ids.NewID(),
		ParticipantID:   voter.ID,
		ParticipantName: voter.Name,
		Room:            voter.Room,
		CardValue:       *in.CardValue,
		CardTitle:       in.CardTitle,
		SubmittedAt:     s.clock.Now(),
	}
	if err := s.storage.SaveVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("save vote: %w", err)
	}

	n := model.NewNotification(model.ActionPlayerVote, *voter)
	n.CardValue = &vote.CardValue
	n.CardTitle = vote.CardTitle
	payload, err := n.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.notify(ctx, voter, payload); err != nil {
		return vote, err
	}
	return vote, nil
}

// NewRound asks the sender's room to start a new round. An unknown sender
// is ignored.
func (s *Service) NewRound(ctx context.Context, channelID model.ChannelID) error {
	sender, err := s.storage.GetParticipantByChannel(ctx, channelID)
	if errors.Is(err, model.ErrParticipantNotFound) {
		s.logger.Debug("new round from unknown channel", slog.String("channel_id", string(channelID)))
		return nil
	}
	if err != nil {
		return err
	}

	payload, err := model.NewNotification(model.ActionNewRound, *sender).Encode()
	if err != nil {
		return err
	}
	return s.notify(ctx, sender, payload)
}

// SendMessage forwards a free-text message to the sender's room. A JSON
// string is forwarded as its contents, anything else as raw JSON.
func (s *Service) SendMessage(ctx context.Context, channelID model.ChannelID, message json.RawMessage) error {
	trimmed := strings.TrimSpace(string(message))
	if trimmed == "" || trimmed == "null" {
		return model.NewValidationError("message")
	}

	payload := []byte(trimmed)
	var text string
	if err := json.Unmarshal(payload, &text); err == nil {
		if text == "" {
			return model.NewValidationError("message")
		}
		payload = []byte(text)
	}

	sender, err := s.storage.GetParticipantByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	return s.notify(ctx, sender, payload)
}

// Disconnect removes the participant bound to the channel and tells the
// rest of the room
func (s *Service) Disconnect(ctx context.Context, channelID model.ChannelID) (*model.Participant, error) {
	sender, err := s.storage.GetParticipantByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.DeleteParticipant(ctx, sender.ID, sender.Name); err != nil {
		return nil, fmt.Errorf("delete participant: %w", err)
	}

	s.logger.Info("participant disconnected",
		slog.String("participant_id", string(sender.ID)),
		slog.String("channel_id", string(channelID)),
	)

	payload, err := model.NewNotification(model.ActionPlayerDisconnect, *sender).Encode()
	if err != nil {
		return sender, err
	}
	if err := s.notify(ctx, sender, payload); err != nil {
		return sender, err
	}
	return sender, nil
}

// ListParticipants returns every participant, or only those in room when
// it is given, newest first
func (s *Service) ListParticipants(ctx context.Context, room *model.Room) ([]*model.Participant, error) {
	var (
		participants []*model.Participant
		err          error
	)
	if room == nil {
		participants, err = s.storage.ListParticipants(ctx)
	} else {
		participants, err = s.resolver.Resolve(ctx, *room)
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(participants, func(a, b *model.Participant) int {
		return strings.Compare(string(b.ID), string(a.ID))
	})
	return participants, nil
}

// ListVotes returns the votes cast in a room, newest first
func (s *Service) ListVotes(ctx context.Context, room model.Room) ([]*model.Vote, error) {
	votes, err := s.storage.ListVotesByRoom(ctx, room)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(votes, func(a, b *model.Vote) int {
		if c := b.SubmittedAt.Compare(a.SubmittedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return votes, nil
}

// notify resolves the sender's room and fans payload out to everyone but
// the sender
func (s *Service) notify(ctx context.Context, sender *model.Participant, payload []byte) error {
	roster, err := s.resolver.Resolve(ctx, sender.Room)
	if err != nil {
		return err
	}

	report, err := s.dispatcher.Broadcast(ctx, roster, sender.ChannelID, payload)
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		s.logger.Warn("some recipients missed a notification",
			slog.String("participant_id", string(sender.ID)),
			slog.Int("failed", report.Failed),
			slog.Int("attempted", report.Attempted),
		)
	}
	return nil
}
