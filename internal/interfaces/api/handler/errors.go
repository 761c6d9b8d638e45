package handler

import (
	appErrors "drnote/internal/pkg/errors"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrPatientNotFound), errors.Is(err, appErrors.ErrAppointmentNotFound),
		errors.Is(err, appErrors.ErrNoteNotFound), errors.Is(err, appErrors.ErrPrescriptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidInput), errors.Is(err, appErrors.ErrInvalidDateTime):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrLineAPI):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = appErrors.ErrInternalServer.Error()
	}
	return c.JSON(status, errorBody{Error: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Error: msg})
}
