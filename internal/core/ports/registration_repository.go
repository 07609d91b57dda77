package ports

import (
	"context"

	"github.com/campuslink/events-api/internal/core/domain"
)

// RegistrationRepository defines persistence operations for registrations.
// Create must enforce the (event, participant) uniqueness invariant and map
// a violation to domain.ErrAlreadyRegistered.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error)
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*domain.Registration, error)
	// MarkCheckedIn stamps the attendance time on a registration.
	MarkCheckedIn(ctx context.Context, id string) (*domain.Registration, error)
}
