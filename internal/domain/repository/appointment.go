package repository

import (
	"context"
	"drnote/internal/domain/entity"
	"time"
)

// AppointmentRepository defines the interface for appointment data operations.
// Read methods preload the patient.
type AppointmentRepository interface {
	// FindByID retrieves an appointment by ID.
	FindByID(ctx context.Context, id uint) (*entity.Appointment, error)
	// FindAll retrieves appointments ordered by date. Zero from/to mean unbounded.
	FindAll(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error)
	// FindByPatientID retrieves all appointments of a patient.
	FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Appointment, error)
	// Create creates a new appointment.
	Create(ctx context.Context, appointment *entity.Appointment) error
	// Update updates an existing appointment. The notification ID is never written.
	Update(ctx context.Context, appointment *entity.Appointment) error
	// Delete deletes an appointment by ID.
	Delete(ctx context.Context, id uint) error
	// DeleteByPatientID deletes all appointments of a patient.
	DeleteByPatientID(ctx context.Context, patientID uint) error
}
