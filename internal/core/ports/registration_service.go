package ports

import (
	"context"

	"github.com/campuslink/events-api/internal/core/domain"
)

// RegisterInput carries the parameters of a registration attempt.
type RegisterInput struct {
	EventID       string
	ParticipantID string
}

// RegistrationService defines the admission flow and attendance operations.
type RegistrationService interface {
	// Register admits the participant onto the event if it is approved and a
	// seat remains. The capacity check and the seat claim are a single
	// atomic storage operation; concurrent attempts near the capacity
	// boundary cannot overbook.
	Register(ctx context.Context, input RegisterInput) (*domain.Registration, error)
	ListMine(ctx context.Context, participantID string) ([]*domain.Registration, error)
	// ListForEvent returns an event's attendee list for its organizer or an admin.
	ListForEvent(ctx context.Context, eventID, actorID, role string) ([]*domain.Registration, error)
	// CheckIn marks attendance; permitted to the event's organizer or an admin.
	CheckIn(ctx context.Context, registrationID, actorID, role string) (*domain.Registration, error)
}
