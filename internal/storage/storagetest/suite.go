// Package storagetest holds the behavioural suite every participant directory
// implementation must pass.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/storage"
)

// DirectorySuite exercises the storage.Storage contract. Embed it in a
// backend-specific suite and assign Storage and Ctx in SetupTest.
type DirectorySuite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var (
	sprint     = model.Room{Name: "sprint1", Secret: "abc"}
	sprintOpen = model.Room{Name: "sprint1"}
	otherRoom  = model.Room{Name: "sprint2", Secret: "abc"}
	joinedAt   = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

func participant(id, name string, room model.Room, channel string) *model.Participant {
	return &model.Participant{
		ID:        model.ParticipantID(id),
		Name:      name,
		Room:      room,
		ChannelID: model.ChannelID(channel),
		JoinedAt:  joinedAt,
	}
}

func (s *DirectorySuite) save(ps ...*model.Participant) {
	for _, p := range ps {
		s.Require().NoError(s.Storage.SaveParticipant(s.Ctx, p))
	}
}

func ids(ps []*model.Participant) []model.ParticipantID {
	out := make([]model.ParticipantID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// Participant tests

func (s *DirectorySuite) TestSaveAndGetParticipant() {
	s.save(participant("p1", "Alice", sprint, ""))

	got, err := s.Storage.GetParticipant(s.Ctx, "p1", "Alice")
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("p1"), got.ID)
	s.Equal("Alice", got.Name)
	s.Equal(sprint, got.Room)
	s.False(got.Connected())
	s.True(joinedAt.Equal(got.JoinedAt))
}

func (s *DirectorySuite) TestGetParticipantRequiresNameMatch() {
	s.save(participant("p1", "Alice", sprint, ""))

	_, err := s.Storage.GetParticipant(s.Ctx, "p1", "Mallory")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *DirectorySuite) TestIdentityWithSeparatorsStaysDistinct() {
	s.save(
		participant("a:b", "c", sprint, "c1"),
		participant("a", "b:c", sprint, "c2"),
	)

	first, err := s.Storage.GetParticipant(s.Ctx, "a:b", "c")
	s.Require().NoError(err)
	s.Equal(model.ChannelID("c1"), first.ChannelID)

	second, err := s.Storage.GetParticipant(s.Ctx, "a", "b:c")
	s.Require().NoError(err)
	s.Equal(model.ChannelID("c2"), second.ChannelID)

	roster, err := s.Storage.ListParticipantsByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.Len(roster, 2)
}

func (s *DirectorySuite) TestGetParticipantNotFound() {
	_, err := s.Storage.GetParticipant(s.Ctx, "missing", "Nobody")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *DirectorySuite) TestSaveParticipantOverwritesChannel() {
	s.save(participant("p1", "Alice", sprint, "conn-old"))
	s.save(participant("p1", "Alice", sprint, "conn-new"))

	got, err := s.Storage.GetParticipantByChannel(s.Ctx, "conn-new")
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("p1"), got.ID)

	_, err = s.Storage.GetParticipantByChannel(s.Ctx, "conn-old")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *DirectorySuite) TestGetParticipantByChannelNotFound() {
	s.save(participant("p1", "Alice", sprint, ""))

	_, err := s.Storage.GetParticipantByChannel(s.Ctx, "conn-unknown")
	s.ErrorIs(err, model.ErrParticipantNotFound)

	_, err = s.Storage.GetParticipantByChannel(s.Ctx, "")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *DirectorySuite) TestListParticipantsByRoom() {
	s.save(
		participant("p1", "Alice", sprint, "c1"),
		participant("p2", "Bob", sprint, "c2"),
		participant("p3", "Carol", otherRoom, "c3"),
		participant("p4", "Dave", sprintOpen, "c4"),
	)

	roster, err := s.Storage.ListParticipantsByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.ElementsMatch([]model.ParticipantID{"p1", "p2"}, ids(roster))

	roster, err = s.Storage.ListParticipantsByRoom(s.Ctx, sprintOpen)
	s.Require().NoError(err)
	s.ElementsMatch([]model.ParticipantID{"p4"}, ids(roster))
}

func (s *DirectorySuite) TestListParticipantsByRoomEmpty() {
	roster, err := s.Storage.ListParticipantsByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.Empty(roster)
}

func (s *DirectorySuite) TestListParticipants() {
	s.save(
		participant("p1", "Alice", sprint, ""),
		participant("p2", "Bob", otherRoom, ""),
	)

	all, err := s.Storage.ListParticipants(s.Ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.ParticipantID{"p1", "p2"}, ids(all))
}

func (s *DirectorySuite) TestDeleteParticipant() {
	s.save(
		participant("p1", "Alice", sprint, "c1"),
		participant("p2", "Bob", sprint, "c2"),
	)

	s.Require().NoError(s.Storage.DeleteParticipant(s.Ctx, "p1", "Alice"))

	_, err := s.Storage.GetParticipant(s.Ctx, "p1", "Alice")
	s.ErrorIs(err, model.ErrParticipantNotFound)
	_, err = s.Storage.GetParticipantByChannel(s.Ctx, "c1")
	s.ErrorIs(err, model.ErrParticipantNotFound)

	roster, err := s.Storage.ListParticipantsByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.Equal([]model.ParticipantID{"p2"}, ids(roster))
}

func (s *DirectorySuite) TestDeleteMissingParticipantIsNotAnError() {
	s.NoError(s.Storage.DeleteParticipant(s.Ctx, "missing", "Nobody"))
}

// Vote tests

func (s *DirectorySuite) TestSaveAndListVotes() {
	votes := []*model.Vote{
		{ID: "v1", ParticipantID: "p1", ParticipantName: "Alice", Room: sprint, CardValue: model.NumberCard("0"), CardTitle: "0", SubmittedAt: joinedAt},
		{ID: "v2", ParticipantID: "p2", ParticipantName: "Bob", Room: sprint, CardValue: model.SymbolCard("?"), CardTitle: "?", SubmittedAt: joinedAt.Add(time.Second)},
		{ID: "v3", ParticipantID: "p3", ParticipantName: "Carol", Room: otherRoom, CardValue: model.NumberCard("8"), CardTitle: "8", SubmittedAt: joinedAt},
	}
	for _, v := range votes {
		s.Require().NoError(s.Storage.SaveVote(s.Ctx, v))
	}

	got, err := s.Storage.ListVotesByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	byID := make(map[string]*model.Vote)
	for _, v := range got {
		byID[v.ID] = v
	}
	s.Equal(model.CardValue("0"), byID["v1"].CardValue)
	s.Equal(model.CardValue(`"?"`), byID["v2"].CardValue)
	s.Equal("Bob", byID["v2"].ParticipantName)
}

func (s *DirectorySuite) TestListVotesEmpty() {
	got, err := s.Storage.ListVotesByRoom(s.Ctx, sprint)
	s.Require().NoError(err)
	s.Empty(got)
}
