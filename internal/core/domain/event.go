package domain

import (
	"errors"
	"time"
)

// EventStatus represents the moderation lifecycle state of an event.
type EventStatus string

const (
	StatusDraft    EventStatus = "draft"
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusArchived EventStatus = "archived"
)

// validTransitions defines the allowed moderation state machine transitions.
// A rejection sends the event back to draft for rework.
var validTransitions = map[EventStatus][]EventStatus{
	StatusDraft:    {StatusPending},
	StatusPending:  {StatusApproved, StatusDraft},
	StatusApproved: {StatusArchived},
}

var ErrEventNotFound = errors.New("event not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrEventNotOpen = errors.New("event is not open for registration")
var ErrEventFull = errors.New("event is full")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event is an organizer-owned activity with an optional seat capacity.
// Capacity nil means unbounded; Registered is the seat counter the admission
// flow increments atomically.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Venue       string         `json:"venue"`
	Capacity    *int           `json:"capacity"`
	Registered  int            `json:"registered"`
	OrganizerID string         `json:"organizer_id"`
	Status      EventStatus    `json:"status"`
	Organizer   *PublicProfile `json:"organizer,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// OwnedBy reports whether the given account may mutate this event.
// Admins may mutate any event.
func (e *Event) OwnedBy(userID, role string) bool {
	return role == RoleAdmin || e.OrganizerID == userID
}
