package handler

import (
	"drnote/internal/application/dto"
	"drnote/internal/application/service"
	"drnote/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppointmentHandler serves /appointments.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
	log                logger.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService service.AppointmentService, log logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, log: log}
}

// List handles GET /appointments?from=&to= (RFC 3339, both optional).
func (h *AppointmentHandler) List(c echo.Context) error {
	from, err := timeQuery(c, "from")
	if err != nil {
		return badRequest(c, "invalid from")
	}
	to, err := timeQuery(c, "to")
	if err != nil {
		return badRequest(c, "invalid to")
	}
	appts, err := h.appointmentService.ListAppointments(c.Request().Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, appts)
}

// Get handles GET /appointments/:id.
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid appointment id")
	}
	appt, err := h.appointmentService.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req dto.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	appt, err := h.appointmentService.CreateAppointment(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, appt)
}

// Update handles PUT /appointments/:id.
func (h *AppointmentHandler) Update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid appointment id")
	}
	var req dto.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	appt, err := h.appointmentService.UpdateAppointment(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

// Delete handles DELETE /appointments/:id.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid appointment id")
	}
	if err := h.appointmentService.DeleteAppointment(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
