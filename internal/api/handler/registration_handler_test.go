package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/events-api/internal/core/domain"
	"github.com/campuslink/events-api/internal/core/ports"
)

// stubRegistrationService implements ports.RegistrationService with canned
// behavior per test.
type stubRegistrationService struct {
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*domain.Registration, error)
	listMineFn     func(ctx context.Context, participantID string) ([]*domain.Registration, error)
	listForEventFn func(ctx context.Context, eventID, actorID, role string) ([]*domain.Registration, error)
	checkInFn      func(ctx context.Context, registrationID, actorID, role string) (*domain.Registration, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Registration, error) {
	return s.registerFn(ctx, input)
}

func (s *stubRegistrationService) ListMine(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	return s.listMineFn(ctx, participantID)
}

func (s *stubRegistrationService) ListForEvent(ctx context.Context, eventID, actorID, role string) ([]*domain.Registration, error) {
	return s.listForEventFn(ctx, eventID, actorID, role)
}

func (s *stubRegistrationService) CheckIn(ctx context.Context, registrationID, actorID, role string) (*domain.Registration, error) {
	return s.checkInFn(ctx, registrationID, actorID, role)
}

func setClaims(c echo.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func TestRegistrationHandler_Register_Success(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.Registration, error) {
			if input.EventID != "ev1" || input.ParticipantID != "p1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Registration{ID: "r1", EventID: "ev1", ParticipantID: "p1", CreatedAt: time.Now()}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/registrations", `{"event_id":"ev1"}`)
	setClaims(c, "p1", domain.RoleParticipant)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registeredResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "registration confirmed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Registration == nil {
		t.Fatalf("expected registration in response")
	}
}

func TestRegistrationHandler_Register_MissingClaims(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Registration, error) {
			t.Fatalf("service must not be called without claims")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/registrations", `{"event_id":"ev1"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRegistrationHandler_Register_MissingEventID(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Registration, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/registrations", `{}`)
	setClaims(c, "p1", domain.RoleParticipant)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRegistrationHandler_Register_FullEventPropagates(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Registration, error) {
			return nil, domain.ErrEventFull
		},
	})

	c, _ := newTestContext(http.MethodPost, "/registrations", `{"event_id":"ev1"}`)
	setClaims(c, "p1", domain.RoleParticipant)

	if err := h.Register(c); !errors.Is(err, domain.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}
}

func TestRegistrationHandler_ListMine(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		listMineFn: func(_ context.Context, participantID string) ([]*domain.Registration, error) {
			if participantID != "p1" {
				t.Fatalf("unexpected participant %q", participantID)
			}
			return []*domain.Registration{
				{ID: "r1", EventID: "ev1", ParticipantID: "p1"},
				{ID: "r2", EventID: "ev2", ParticipantID: "p1"},
			}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/registrations/mine", "")
	setClaims(c, "p1", domain.RoleParticipant)

	if err := h.ListMine(c); err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var regs []domain.Registration
	if err := json.Unmarshal(rec.Body.Bytes(), &regs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(regs))
	}
}

func TestRegistrationHandler_ListForEvent_ForwardsActor(t *testing.T) {
	h := NewRegistrationHandler(&stubRegistrationService{
		listForEventFn: func(_ context.Context, eventID, actorID, role string) ([]*domain.Registration, error) {
			if eventID != "ev1" || actorID != "org1" || role != domain.RoleOrganizer {
				t.Fatalf("unexpected call: %s %s %s", eventID, actorID, role)
			}
			return nil, domain.ErrForbidden
		},
	})

	c, _ := newTestContext(http.MethodGet, "/events/ev1/registrations", "")
	c.SetParamNames("id")
	c.SetParamValues("ev1")
	setClaims(c, "org1", domain.RoleOrganizer)

	if err := h.ListForEvent(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRegistrationHandler_CheckIn(t *testing.T) {
	now := time.Now()
	h := NewRegistrationHandler(&stubRegistrationService{
		checkInFn: func(_ context.Context, registrationID, actorID, role string) (*domain.Registration, error) {
			if registrationID != "r1" {
				t.Fatalf("unexpected registration id %q", registrationID)
			}
			return &domain.Registration{ID: "r1", EventID: "ev1", ParticipantID: "p1", CheckedInAt: &now}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/registrations/r1/checkin", "")
	c.SetParamNames("id")
	c.SetParamValues("r1")
	setClaims(c, "org1", domain.RoleOrganizer)

	if err := h.CheckIn(c); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reg domain.Registration
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reg.CheckedInAt == nil {
		t.Fatalf("expected checked_in_at to be set")
	}
}
