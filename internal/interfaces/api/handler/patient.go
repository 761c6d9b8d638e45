package handler

import (
	"drnote/internal/application/dto"
	"drnote/internal/application/service"
	"drnote/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PatientHandler serves /patients.
type PatientHandler struct {
	patientService service.PatientService
	log            logger.Logger
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patientService service.PatientService, log logger.Logger) *PatientHandler {
	return &PatientHandler{patientService: patientService, log: log}
}

// List handles GET /patients?q=name.
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.patientService.ListPatients(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, patients)
}

// Get handles GET /patients/:id.
func (h *PatientHandler) Get(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	patient, err := h.patientService.GetPatient(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, patient)
}

// Create handles POST /patients.
func (h *PatientHandler) Create(c echo.Context) error {
	var req dto.PatientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	patient, err := h.patientService.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, patient)
}

// Update handles PUT /patients/:id.
func (h *PatientHandler) Update(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	var req dto.PatientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	patient, err := h.patientService.UpdatePatient(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /patients/:id.
func (h *PatientHandler) Delete(c echo.Context) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	if err := h.patientService.DeletePatient(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
