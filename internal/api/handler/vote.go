package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/scrumpoker/internal/api/request"
	"github.com/mcoot/scrumpoker/internal/api/response"
	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/services/presence"
)

// VoteHandler handles vote endpoints
type VoteHandler struct {
	presence *presence.Service
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(presence *presence.Service) *VoteHandler {
	return &VoteHandler{
		presence: presence,
	}
}

// Vote handles POST /api/v1/votes
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	_, err := h.presence.Vote(r.Context(), presence.VoteInput{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		RoomName:   req.RoomName,
		RoomSecret: req.RoomSecret,
		CardValue:  req.CardValue,
		CardTitle:  req.CardTitle,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, response.MessageVoteAccepted)
}

// List handles GET /api/v1/votes?roomName=&roomSecret=
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("roomName") == "" {
		WriteError(w, model.NewValidationError("roomName"))
		return
	}
	secret := query.Get("roomSecret")

	votes, err := h.presence.ListVotes(r.Context(), model.NewRoom(query.Get("roomName"), &secret))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.VotesFromModel(votes))
}
