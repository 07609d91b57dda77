package domain

import (
	"errors"
	"time"
)

var ErrRegistrationNotFound = errors.New("registration not found")
var ErrAlreadyRegistered = errors.New("already registered for this event")

// Registration is a participant's claim on one seat of an event.
type Registration struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	ParticipantID string     `json:"participant_id"`
	CreatedAt     time.Time  `json:"created_at"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
}
