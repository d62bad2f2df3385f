package redis

import (
	"fmt"

	"github.com/mcoot/scrumpoker/internal/model"
)

// Key prefix for all presence data
const keyPrefix = "scrumpoker"

// participantKey returns the Redis key for a Participant document
func participantKey(id model.ParticipantID, name string) string {
	return fmt.Sprintf("%s:participant:%s", keyPrefix, model.IdentityKey(id, name))
}

// participantsIndexKey returns the Redis key for the SET of every participant document
func participantsIndexKey() string {
	return fmt.Sprintf("%s:idx:participants", keyPrefix)
}

// roomIndexKey returns the Redis key for the SET of participant documents in a room.
// The room is addressed by digest so secrets never appear in key names.
func roomIndexKey(room model.Room) string {
	return fmt.Sprintf("%s:idx:room:%s", keyPrefix, room.Key())
}

// channelIndexKey returns the Redis key mapping a channel to its participant document
func channelIndexKey(channelID model.ChannelID) string {
	return fmt.Sprintf("%s:idx:channel:%s", keyPrefix, channelID)
}

// votesKey returns the Redis key for the LIST of votes cast in a room
func votesKey(room model.Room) string {
	return fmt.Sprintf("%s:votes:%s", keyPrefix, room.Key())
}
