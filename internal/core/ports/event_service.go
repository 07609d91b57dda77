package ports

import (
	"context"
	"time"

	"github.com/campuslink/events-api/internal/core/domain"
)

// CreateEventInput carries all data needed to create a new event.
// The organizer is always the authenticated caller; a caller-supplied
// organizer field is never honoured.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Venue       string
	Capacity    *int
	OrganizerID string
}

// UpdateEventInput carries a partial update plus the caller identity used for
// the ownership check.
type UpdateEventInput struct {
	EventID string
	ActorID string
	Role    string
	Patch   EventPatch
}

// ModerationAction names a lifecycle transition requested by a caller.
type ModerationAction string

const (
	ActionSubmit  ModerationAction = "submit"
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
	ActionArchive ModerationAction = "archive"
)

// EventService defines use-case operations for events.
type EventService interface {
	Create(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	// Get returns a single event. Non-approved events are only visible to
	// their organizer and to admins; other callers receive ErrEventNotFound.
	Get(ctx context.Context, eventID, actorID, role string) (*domain.Event, error)
	// ListApproved returns every approved event with its organizer profile
	// populated. Results may be served from the listing cache.
	ListApproved(ctx context.Context) ([]*domain.Event, error)
	ListMine(ctx context.Context, organizerID string) ([]*domain.Event, error)
	Update(ctx context.Context, input UpdateEventInput) (*domain.Event, error)
	// Transition applies a moderation action (submit/approve/reject/archive)
	// with the role and ownership rules of the action.
	Transition(ctx context.Context, eventID, actorID, role string, action ModerationAction) (*domain.Event, error)
}
