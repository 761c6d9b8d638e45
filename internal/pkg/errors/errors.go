package errors

import "errors"

// Custom application errors
var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNoteNotFound         = errors.New("note not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDateTime      = errors.New("invalid date/time") // Unparseable or zero appointment time
	ErrDatabaseOperation    = errors.New("database operation failed")
	ErrLineAPI              = errors.New("LINE API request failed")
	ErrScheduling           = errors.New("reminder scheduling failed")
	ErrInternalServer       = errors.New("internal server error")
)
