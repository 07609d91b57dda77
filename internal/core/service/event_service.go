package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/events-api/internal/api/metrics"
	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

// ListingCache abstracts the public listing cache (Redis).
type ListingCache interface {
	Get(ctx context.Context) ([]*domain.Event, bool)
	Set(ctx context.Context, events []*domain.Event)
	Invalidate(ctx context.Context)
}

// AuditSink receives audit entries for asynchronous persistence.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}

type eventService struct {
	events ports.EventRepository
	users  ports.UserRepository
	cache  ListingCache
	audit  AuditSink
	log    zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	events ports.EventRepository,
	users ports.UserRepository,
	cache ListingCache,
	audit AuditSink,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{events: events, users: users, cache: cache, audit: audit, log: log}
}

// Create persists a new draft event owned by the caller.
func (s *eventService) Create(ctx context.Context, input ports.CreateEventInput) (*domain.Event, error) {
	now := time.Now().UTC()
	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Venue:       input.Venue,
		Capacity:    input.Capacity,
		OrganizerID: input.OrganizerID,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Str("organizer_id", input.OrganizerID).Msg("failed to create event")
		return nil, err
	}

	metrics.EventsCreatedTotal.Inc()
	s.audit.Enqueue(domain.AuditEntry{
		EventID:   created.ID,
		ActorID:   input.OrganizerID,
		Action:    domain.AuditEventCreated,
		Timestamp: now,
	})

	s.log.Info().Str("event_id", created.ID).Str("organizer_id", input.OrganizerID).Msg("event created")
	return created, nil
}

// Get returns a single event. Non-approved events are hidden from everyone
// but their organizer and admins; outsiders see not-found, not forbidden, so
// the existence of unpublished drafts is not leaked.
func (s *eventService) Get(ctx context.Context, eventID, actorID, role string) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusApproved && !event.OwnedBy(actorID, role) {
		return nil, domain.ErrEventNotFound
	}
	if err := s.attachOrganizers(ctx, []*domain.Event{event}); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("failed to attach organizer profile")
	}
	return event, nil
}

// ListApproved returns every approved event with its organizer populated.
func (s *eventService) ListApproved(ctx context.Context) ([]*domain.Event, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	events, err := s.events.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, err
	}
	if err := s.attachOrganizers(ctx, events); err != nil {
		s.log.Warn().Err(err).Msg("failed to attach organizer profiles")
	}

	s.cache.Set(ctx, events)
	return events, nil
}

func (s *eventService) ListMine(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return s.events.ListByOrganizer(ctx, organizerID)
}

// Update applies a partial field update after the ownership check. Status is
// not part of the patch; lifecycle changes go through Transition.
func (s *eventService) Update(ctx context.Context, input ports.UpdateEventInput) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(input.ActorID, input.Role) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.events.UpdateFields(ctx, input.EventID, input.Patch)
	if err != nil {
		return nil, err
	}

	// An approved event's public listing may have gone stale.
	if updated.Status == domain.StatusApproved {
		s.cache.Invalidate(ctx)
	}

	s.audit.Enqueue(domain.AuditEntry{
		EventID:   updated.ID,
		ActorID:   input.ActorID,
		Action:    domain.AuditEventUpdated,
		Timestamp: time.Now().UTC(),
	})

	return updated, nil
}

// transitionRule binds a moderation action to its state change and to who may
// request it.
type transitionRule struct {
	from      domain.EventStatus
	to        domain.EventStatus
	adminOnly bool
	audit     string
}

var transitionRules = map[ports.ModerationAction]transitionRule{
	ports.ActionSubmit:  {from: domain.StatusDraft, to: domain.StatusPending, audit: domain.AuditSubmitted},
	ports.ActionApprove: {from: domain.StatusPending, to: domain.StatusApproved, adminOnly: true, audit: domain.AuditApproved},
	ports.ActionReject:  {from: domain.StatusPending, to: domain.StatusDraft, adminOnly: true, audit: domain.AuditRejected},
	ports.ActionArchive: {from: domain.StatusApproved, to: domain.StatusArchived, audit: domain.AuditArchived},
}

// Transition applies a moderation action. Submit and archive require
// ownership (admins included); approve and reject are admin-only.
func (s *eventService) Transition(ctx context.Context, eventID, actorID, role string, action ports.ModerationAction) (*domain.Event, error) {
	rule, ok := transitionRules[action]
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if rule.adminOnly {
		if role != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	} else if !event.OwnedBy(actorID, role) {
		return nil, domain.ErrForbidden
	}

	if !event.Status.CanTransitionTo(rule.to) || event.Status != rule.from {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.events.TransitionStatus(ctx, eventID, rule.from, rule.to)
	if err != nil {
		return nil, err
	}

	// Approvals add to the public listing, archival removes from it.
	if rule.to == domain.StatusApproved || rule.from == domain.StatusApproved {
		s.cache.Invalidate(ctx)
	}

	metrics.ModerationTransitionsTotal.WithLabelValues(string(action)).Inc()
	s.audit.Enqueue(domain.AuditEntry{
		EventID:   eventID,
		ActorID:   actorID,
		Action:    rule.audit,
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().
		Str("event_id", eventID).
		Str("actor_id", actorID).
		Str("action", string(action)).
		Msg("event status transition")

	return updated, nil
}

// attachOrganizers populates the organizer profile on each event, fetching
// every distinct organizer once.
func (s *eventService) attachOrganizers(ctx context.Context, events []*domain.Event) error {
	profiles := make(map[string]*domain.PublicProfile)
	for _, e := range events {
		if _, seen := profiles[e.OrganizerID]; seen {
			continue
		}
		user, err := s.users.FindByID(ctx, e.OrganizerID)
		if err != nil {
			return err
		}
		profiles[e.OrganizerID] = &domain.PublicProfile{Name: user.Name, Email: user.Email}
	}
	for _, e := range events {
		e.Organizer = profiles[e.OrganizerID]
	}
	return nil
}
