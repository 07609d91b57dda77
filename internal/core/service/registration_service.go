package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/events-api/internal/api/metrics"
	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

type registrationService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	audit         AuditSink
	log           zerolog.Logger
}

// NewRegistrationService returns a RegistrationService implementation.
func NewRegistrationService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	audit AuditSink,
	log zerolog.Logger,
) ports.RegistrationService {
	return &registrationService{
		events:        events,
		registrations: registrations,
		audit:         audit,
		log:           log,
	}
}

// Register admits the participant onto the event. The seat claim is an atomic
// conditional increment on the event's registered counter, so concurrent
// attempts near the capacity boundary cannot overbook. A duplicate
// registration releases the claimed seat before reporting the conflict.
func (s *registrationService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Registration, error) {
	event, err := s.events.FindByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}

	if event.Status != domain.StatusApproved {
		metrics.RegistrationsRejectedTotal.WithLabelValues("not_open").Inc()
		return nil, domain.ErrEventNotOpen
	}

	if err := s.events.AdmitSeat(ctx, input.EventID); err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("full").Inc()
		}
		return nil, err
	}

	reg := &domain.Registration{
		EventID:       input.EventID,
		ParticipantID: input.ParticipantID,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.registrations.Create(ctx, reg)
	if err != nil {
		// The seat was claimed but the record could not be written; give the
		// seat back before surfacing the error.
		if relErr := s.events.ReleaseSeat(ctx, input.EventID); relErr != nil {
			s.log.Error().Err(relErr).Str("event_id", input.EventID).Msg("failed to release seat after insert failure")
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			metrics.RegistrationsRejectedTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	metrics.RegistrationsAdmittedTotal.Inc()
	s.audit.Enqueue(domain.AuditEntry{
		EventID:   input.EventID,
		ActorID:   input.ParticipantID,
		Action:    domain.AuditAdmitted,
		Timestamp: created.CreatedAt,
	})

	s.log.Info().
		Str("event_id", input.EventID).
		Str("participant_id", input.ParticipantID).
		Msg("registration admitted")

	return created, nil
}

func (s *registrationService) ListMine(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return s.registrations.ListByParticipant(ctx, participantID)
}

// ListForEvent returns the attendee list, gated on event ownership.
func (s *registrationService) ListForEvent(ctx context.Context, eventID, actorID, role string) ([]*domain.Registration, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(actorID, role) {
		return nil, domain.ErrForbidden
	}
	return s.registrations.ListByEvent(ctx, eventID)
}

// CheckIn stamps attendance on a registration, gated on event ownership.
func (s *registrationService) CheckIn(ctx context.Context, registrationID, actorID, role string) (*domain.Registration, error) {
	reg, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(actorID, role) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.registrations.MarkCheckedIn(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEntry{
		EventID:   reg.EventID,
		ActorID:   actorID,
		Action:    domain.AuditCheckedIn,
		Detail:    reg.ParticipantID,
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}
