package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/events-api/internal/core/ports"
)

// EventHandler handles event CRUD and moderation endpoints.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /events — the public listing of approved events.
//
// @Summary      List approved events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id. Approved events are public; other statuses
// are only visible to the owning organizer or an admin, identified by an
// optional bearer token.
//
// @Summary      Get a single event
// @Tags         events
// @Produce      json
// @Param        id  path  string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	// Anonymous callers have no claims; the service treats them as outsiders.
	actorID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)

	event, err := h.eventService.Get(c.Request().Context(), c.Param("id"), actorID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// ListMine handles GET /events/mine — the organizer dashboard listing, all
// statuses included.
//
// @Summary      List the caller's events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  errorResponse
// @Router       /events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	events, err := h.eventService.ListMine(c.Request().Context(), actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Create handles POST /events. Organizer role required; the event is created
// as a draft owned by the caller.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event fields"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Venue:       req.Venue,
		Capacity:    req.Capacity,
		OrganizerID: actorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, event)
}

// Update handles PATCH /events/:id — a partial field update gated on
// ownership. Status changes are rejected here; they go through the
// moderation endpoints.
//
// @Summary      Update an event's fields
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event id"
// @Param        body  body      updateEventRequest  true  "Partial event fields"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Update(c.Request().Context(), ports.UpdateEventInput{
		EventID: c.Param("id"),
		ActorID: actorID,
		Role:    role,
		Patch: ports.EventPatch{
			Title:       req.Title,
			Description: req.Description,
			Date:        req.Date,
			Venue:       req.Venue,
			Capacity:    req.Capacity,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, event)
}

// Transition returns a handler applying the given moderation action to the
// event in the path. One route each for submit, approve, reject, archive.
//
// @Summary      Apply a moderation action
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /events/{id}/{action} [post]
func (h *EventHandler) Transition(action ports.ModerationAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		actorID, role, err := ctxIdentity(c)
		if err != nil {
			return err
		}

		event, err := h.eventService.Transition(c.Request().Context(), c.Param("id"), actorID, role, action)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, event)
	}
}
