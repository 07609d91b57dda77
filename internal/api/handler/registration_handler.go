package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/events-api/internal/core/ports"
)

// RegistrationHandler handles the admission flow and attendance endpoints.
type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registrationService ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

type registerRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

type registeredResponse struct {
	Message      string `json:"message"`
	Registration any    `json:"registration,omitempty"`
}

// Register handles POST /registrations — the capacity-bounded admission flow.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Event to register for"
// @Success      201   {object}  registeredResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /registrations [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.registrationService.Register(c.Request().Context(), ports.RegisterInput{
		EventID:       req.EventID,
		ParticipantID: actorID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registeredResponse{
		Message:      "registration confirmed",
		Registration: reg,
	})
}

// ListMine handles GET /registrations/mine — the participant dashboard listing.
//
// @Summary      List the caller's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Registration
// @Failure      401  {object}  errorResponse
// @Router       /registrations/mine [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	regs, err := h.registrationService.ListMine(c.Request().Context(), actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// ListForEvent handles GET /events/:id/registrations — the attendee list for
// the event's organizer or an admin.
//
// @Summary      List an event's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      200  {array}   domain.Registration
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/registrations [get]
func (h *RegistrationHandler) ListForEvent(c echo.Context) error {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	regs, err := h.registrationService.ListForEvent(c.Request().Context(), c.Param("id"), actorID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// CheckIn handles POST /registrations/:id/checkin — attendance marking by the
// event's organizer or an admin.
//
// @Summary      Check a participant in
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Registration id"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /registrations/{id}/checkin [post]
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reg, err := h.registrationService.CheckIn(c.Request().Context(), c.Param("id"), actorID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}
