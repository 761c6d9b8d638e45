package service

import (
	"context"
	"drnote/internal/application/dto"
	"time"
)

// AppointmentService is the single write path for appointments. Every
// mutation publishes a lifecycle event.
type AppointmentService interface {
	// CreateAppointment creates an appointment and generates its notification ID.
	CreateAppointment(ctx context.Context, req dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	// GetAppointment retrieves an appointment by ID.
	GetAppointment(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	// ListAppointments retrieves appointments in [from, to). Zero bounds are open.
	ListAppointments(ctx context.Context, from, to time.Time) ([]dto.AppointmentResponse, error)
	// UpdateAppointment replaces the editable fields of an appointment.
	UpdateAppointment(ctx context.Context, id uint, req dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	// DeleteAppointment deletes an appointment.
	DeleteAppointment(ctx context.Context, id uint) error
}
