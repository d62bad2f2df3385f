package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/scrumpoker/internal/api/request"
	"github.com/mcoot/scrumpoker/internal/api/response"
	"github.com/mcoot/scrumpoker/internal/model"
	"github.com/mcoot/scrumpoker/internal/services/presence"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	presence *presence.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(presence *presence.Service) *PlayerHandler {
	return &PlayerHandler{
		presence: presence,
	}
}

// Join handles POST /api/v1/players
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.presence.Join(r.Context(), presence.JoinInput{
		PlayerName: req.PlayerName,
		RoomName:   req.RoomName,
		RoomSecret: req.RoomSecret,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		Message:  response.MessagePlayerJoined,
		PlayerID: string(p.ID),
	})
}

// List handles GET /api/v1/players[?roomName=&roomSecret=]
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	var room *model.Room
	if query := r.URL.Query(); query.Get("roomName") != "" {
		secret := query.Get("roomSecret")
		rm := model.NewRoom(query.Get("roomName"), &secret)
		room = &rm
	}

	participants, err := h.presence.ListParticipants(r.Context(), room)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantsFromModel(participants))
}
