package model

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Room identifies a group of participants by name and optional secret.
// An absent secret and an empty secret are the same room.
type Room struct {
	Name   string `json:"roomName"`
	Secret string `json:"roomSecret,omitempty"`
}

// NewRoom builds a Room; a nil secret is the canonical "no secret" value.
func NewRoom(name string, secret *string) Room {
	r := Room{Name: name}
	if secret != nil {
		r.Secret = *secret
	}
	return r
}

// Key returns a stable digest of the room identity, safe for use in storage keys
func (r Room) Key() string {
	return digest(r.Name, r.Secret)
}

// HasSecret reports whether the room is secret-protected
func (r Room) HasSecret() bool {
	return r.Secret != ""
}

// digest hashes length-prefixed parts, so no choice of separator characters
// inside a part can make two different tuples collide
func digest(parts ...string) string {
	h, _ := blake2b.New256(nil)
	var buf []byte
	for _, part := range parts {
		buf = binary.AppendUvarint(buf[:0], uint64(len(part)))
		_, _ = h.Write(buf)
		_, _ = h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
