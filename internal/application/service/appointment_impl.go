package service

import (
	"context"
	"drnote/internal/application/dto"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	appErrors "drnote/internal/pkg/errors"
	"drnote/internal/pkg/logger"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	events          EventPublisher
	log             logger.Logger
	now             func() time.Time
}

// NewAppointmentService creates a new instance of AppointmentService implementation.
// events may be nil.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	events EventPublisher,
	log logger.Logger,
) AppointmentService {
	if events == nil {
		events = nopPublisher{}
	}
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		events:          events,
		log:             log,
		now:             time.Now,
	}
}

// CreateAppointment creates an appointment and generates its notification ID.
func (s *appointmentService) CreateAppointment(ctx context.Context, req dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	appt := &entity.Appointment{
		PatientID:      patient.ID,
		Patient:        patient,
		Date:           req.Date,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Status:         req.Status,
		NotificationID: uuid.NewString(),
	}
	if err := s.appointmentRepo.Create(ctx, appt); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create appointment for patient %d", patient.ID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.publish(constant.AppointmentCreated, appt)
	s.log.Info(fmt.Sprintf("Created appointment %d for patient %d at %v", appt.ID, patient.ID, appt.Date))
	resp := dto.ToAppointmentResponse(appt)
	return &resp, nil
}

// GetAppointment retrieves an appointment by ID.
func (s *appointmentService) GetAppointment(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToAppointmentResponse(appt)
	return &resp, nil
}

// ListAppointments retrieves appointments in [from, to).
func (s *appointmentService) ListAppointments(ctx context.Context, from, to time.Time) ([]dto.AppointmentResponse, error) {
	appts, err := s.appointmentRepo.FindAll(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to list appointments", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToAppointmentResponseList(appts), nil
}

// UpdateAppointment replaces the editable fields of an appointment. The
// notification ID is kept.
func (s *appointmentService) UpdateAppointment(ctx context.Context, id uint, req dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	patient, err := s.validate(ctx, &req)
	if err != nil {
		return nil, err
	}

	appt.PatientID = patient.ID
	appt.Patient = patient
	appt.Date = req.Date
	appt.Reason = req.Reason
	appt.Notes = req.Notes
	appt.Status = req.Status
	appt.UpdatedAt = s.now()
	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update appointment %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.publish(constant.AppointmentEdited, appt)
	s.log.Info(fmt.Sprintf("Updated appointment %d", id))
	resp := dto.ToAppointmentResponse(appt)
	return &resp, nil
}

// DeleteAppointment deletes an appointment. The deleted event is published
// before the row is removed.
func (s *appointmentService) DeleteAppointment(ctx context.Context, id uint) error {
	appt, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	s.publish(constant.AppointmentDeleted, appt)
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete appointment %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted appointment %d", id))
	return nil
}

func (s *appointmentService) find(ctx context.Context, id uint) (*entity.Appointment, error) {
	appt, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAppointmentNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get appointment %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return appt, nil
}

// validate normalizes req and returns the referenced patient.
func (s *appointmentService) validate(ctx context.Context, req *dto.AppointmentRequest) (*entity.Patient, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", appErrors.ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, appErrors.ErrInvalidDateTime
	}
	if req.Status == "" {
		req.Status = constant.AppointmentStatusScheduled
	}
	if !constant.ValidAppointmentStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", appErrors.ErrInvalidInput, req.Status)
	}
	if req.PatientID == 0 {
		return nil, fmt.Errorf("%w: patient is required", appErrors.ErrInvalidInput)
	}

	patient, err := s.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPatientNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get patient %d", req.PatientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return patient, nil
}

func (s *appointmentService) publish(typ constant.AppointmentEventType, appt *entity.Appointment) {
	s.events.Publish(entity.AppointmentEvent{
		Type:        typ,
		Appointment: snapshotAppointment(appt),
		OccurredAt:  s.now(),
	})
}
