package handler

import (
	"drnote/internal/application/dto"
	"drnote/internal/application/service"
	"drnote/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RecordHandler serves a patient's chart under /patients/:id/notes and
// /patients/:id/prescriptions.
type RecordHandler struct {
	recordService service.RecordService
	log           logger.Logger
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService, log logger.Logger) *RecordHandler {
	return &RecordHandler{recordService: recordService, log: log}
}

// ListNotes handles GET /patients/:id/notes.
func (h *RecordHandler) ListNotes(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	notes, err := h.recordService.ListNotes(c.Request().Context(), patientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /patients/:id/notes.
func (h *RecordHandler) CreateNote(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	var req dto.NoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	note, err := h.recordService.CreateNote(c.Request().Context(), patientID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /patients/:id/notes/:noteID.
func (h *RecordHandler) UpdateNote(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	noteID, ok := uintParam(c, "noteID")
	if !ok {
		return badRequest(c, "invalid note id")
	}
	var req dto.NoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	note, err := h.recordService.UpdateNote(c.Request().Context(), patientID, noteID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /patients/:id/notes/:noteID.
func (h *RecordHandler) DeleteNote(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	noteID, ok := uintParam(c, "noteID")
	if !ok {
		return badRequest(c, "invalid note id")
	}
	if err := h.recordService.DeleteNote(c.Request().Context(), patientID, noteID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPrescriptions handles GET /patients/:id/prescriptions.
func (h *RecordHandler) ListPrescriptions(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	list, err := h.recordService.ListPrescriptions(c.Request().Context(), patientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// CreatePrescription handles POST /patients/:id/prescriptions.
func (h *RecordHandler) CreatePrescription(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	var req dto.PrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rx, err := h.recordService.CreatePrescription(c.Request().Context(), patientID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rx)
}

// UpdatePrescription handles PUT /patients/:id/prescriptions/:prescriptionID.
func (h *RecordHandler) UpdatePrescription(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	prescriptionID, ok := uintParam(c, "prescriptionID")
	if !ok {
		return badRequest(c, "invalid prescription id")
	}
	var req dto.PrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rx, err := h.recordService.UpdatePrescription(c.Request().Context(), patientID, prescriptionID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rx)
}

// DeletePrescription handles DELETE /patients/:id/prescriptions/:prescriptionID.
func (h *RecordHandler) DeletePrescription(c echo.Context) error {
	patientID, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid patient id")
	}
	prescriptionID, ok := uintParam(c, "prescriptionID")
	if !ok {
		return badRequest(c, "invalid prescription id")
	}
	if err := h.recordService.DeletePrescription(c.Request().Context(), patientID, prescriptionID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
