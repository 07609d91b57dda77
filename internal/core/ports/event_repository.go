package ports

import (
	"context"
	"time"

	"github.com/campuslink/events-api/internal/core/domain"
)

// EventPatch carries the mutable event fields for a partial update.
// Nil fields are left untouched; status is deliberately absent — lifecycle
// changes go through TransitionStatus.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Venue       *string
	Capacity    *int
}

// EventRepository defines persistence operations for events, including the
// atomic seat-counter primitives used by the admission flow.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error)
	UpdateFields(ctx context.Context, id string, patch EventPatch) (*domain.Event, error)

	// TransitionStatus moves the event from one lifecycle status to another.
	// The update is conditional on the current stored status so concurrent
	// moderation attempts cannot double-apply; a mismatch yields
	// domain.ErrInvalidTransition.
	TransitionStatus(ctx context.Context, id string, from, to domain.EventStatus) (*domain.Event, error)

	// AdmitSeat increments the registered counter if and only if the event
	// still has capacity (or capacity is unbounded). Returns
	// domain.ErrEventFull when no seat remains.
	AdmitSeat(ctx context.Context, id string) error
	// ReleaseSeat undoes an AdmitSeat after a failed registration insert.
	ReleaseSeat(ctx context.Context, id string) error
}
