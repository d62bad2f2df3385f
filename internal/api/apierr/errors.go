package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scrumpoker/internal/model"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingFields      = "MISSING_FIELDS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeVoterNotFound      = "VOTER_NOT_FOUND"
	CodeVoterNotConnected  = "VOTER_NOT_CONNECTED"
	CodeConnectUnconfirmed = "CONNECT_UNCONFIRMED"
	CodeBroadcastFailed    = "BROADCAST_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an ErrorResponse
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusBadRequest, ErrorResponse{verr.Error(), CodeMissingFields}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrVoterNotFound):
		return &httpError{http.StatusBadRequest, ErrorResponse{"Player not found", CodeVoterNotFound}}
	case errors.Is(err, model.ErrVoterNotConnected):
		return &httpError{http.StatusBadRequest, ErrorResponse{"Player is not connected", CodeVoterNotConnected}}
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{"Player not found", CodePlayerNotFound}}
	case errors.Is(err, model.ErrConnectUnconfirmed):
		return &httpError{http.StatusTeapot, ErrorResponse{"Connection could not be confirmed", CodeConnectUnconfirmed}}
	case errors.Is(err, model.ErrDispatchFault):
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Error while notifying players", CodeBroadcastFailed}}

	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{message, CodeInvalidRequest}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
}
