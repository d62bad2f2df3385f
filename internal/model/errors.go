package model

import (
	"errors"
	"strings"
)

// Common errors used across the application
var (
	// Directory errors
	ErrParticipantNotFound = errors.New("participant not found")

	// Presence errors
	ErrVoterNotFound      = errors.New("voting participant not found")
	ErrVoterNotConnected  = errors.New("voting participant has no live channel")
	ErrConnectUnconfirmed = errors.New("channel update was not observed by the directory")

	// Dispatch errors
	ErrDispatchFault = errors.New("broadcast dispatch fault")
)

// ValidationError lists the required fields that were missing from a request
type ValidationError struct {
	Fields []string
}

// NewValidationError creates a ValidationError for the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "Error! Required JSON fields missing: " + strings.Join(e.Fields, ", ")
}
