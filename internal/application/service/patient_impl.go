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

	"gorm.io/gorm"
)

type patientService struct {
	patientRepo      repository.PatientRepository
	appointmentRepo  repository.AppointmentRepository // Needed for the cascade on delete
	noteRepo         repository.NoteRepository
	prescriptionRepo repository.PrescriptionRepository
	events           EventPublisher
	log              logger.Logger
	now              func() time.Time
}

// NewPatientService creates a new instance of PatientService implementation.
// events may be nil.
func NewPatientService(
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	noteRepo repository.NoteRepository,
	prescriptionRepo repository.PrescriptionRepository,
	events EventPublisher,
	log logger.Logger,
) PatientService {
	if events == nil {
		events = nopPublisher{}
	}
	return &patientService{
		patientRepo:      patientRepo,
		appointmentRepo:  appointmentRepo,
		noteRepo:         noteRepo,
		prescriptionRepo: prescriptionRepo,
		events:           events,
		log:              log,
		now:              time.Now,
	}
}

// CreatePatient creates a patient.
func (s *patientService) CreatePatient(ctx context.Context, req dto.PatientRequest) (*dto.PatientResponse, error) {
	if err := validatePatient(&req); err != nil {
		return nil, err
	}
	patient := &entity.Patient{}
	applyPatient(patient, req)
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create patient %s", patient.FullName), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created patient %d", patient.ID))
	resp := dto.ToPatientResponse(patient)
	return &resp, nil
}

// GetPatient retrieves a patient by ID.
func (s *patientService) GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToPatientResponse(patient)
	return &resp, nil
}

// ListPatients retrieves patients whose name contains query.
func (s *patientService) ListPatients(ctx context.Context, query string) ([]dto.PatientResponse, error) {
	patients, err := s.patientRepo.FindAll(ctx, strings.TrimSpace(query))
	if err != nil {
		s.log.Error("Failed to list patients", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToPatientResponseList(patients), nil
}

// UpdatePatient replaces the editable fields of a patient. A name change is
// published as an edit of each of the patient's appointments, since their
// reminders show the name.
func (s *patientService) UpdatePatient(ctx context.Context, id uint, req dto.PatientRequest) (*dto.PatientResponse, error) {
	if err := validatePatient(&req); err != nil {
		return nil, err
	}
	patient, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	renamed := patient.FullName != req.FullName

	applyPatient(patient, req)
	if err := s.patientRepo.Update(ctx, patient); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update patient %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if renamed {
		appts, err := s.appointmentRepo.FindByPatientID(ctx, id)
		if err != nil {
			// The patient is saved; only the reminder text goes stale.
			s.log.Error(fmt.Sprintf("Failed to load appointments of renamed patient %d", id), err)
		}
		for _, appt := range appts {
			s.publish(constant.AppointmentEdited, appt)
		}
	}

	s.log.Info(fmt.Sprintf("Updated patient %d", id))
	resp := dto.ToPatientResponse(patient)
	return &resp, nil
}

// DeletePatient deletes a patient with its appointments, notes and
// prescriptions. Deleted events are published for the appointments before any
// row is removed.
func (s *patientService) DeletePatient(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	appts, err := s.appointmentRepo.FindByPatientID(ctx, id)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load appointments of patient %d before delete", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	for _, appt := range appts {
		s.publish(constant.AppointmentDeleted, appt)
	}

	if err := s.appointmentRepo.DeleteByPatientID(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete appointments of patient %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.noteRepo.DeleteByPatientID(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete notes of patient %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.prescriptionRepo.DeleteByPatientID(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete prescriptions of patient %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.patientRepo.Delete(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete patient %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted patient %d and %d appointments", id, len(appts)))
	return nil
}

func (s *patientService) find(ctx context.Context, id uint) (*entity.Patient, error) {
	patient, err := s.patientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPatientNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get patient %d", id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return patient, nil
}

func (s *patientService) publish(typ constant.AppointmentEventType, appt *entity.Appointment) {
	s.events.Publish(entity.AppointmentEvent{
		Type:        typ,
		Appointment: snapshotAppointment(appt),
		OccurredAt:  s.now(),
	})
}

func validatePatient(req *dto.PatientRequest) error {
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return fmt.Errorf("%w: full name is required", appErrors.ErrInvalidInput)
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		return fmt.Errorf("%w: age out of range", appErrors.ErrInvalidInput)
	}
	if req.Gender == "" {
		req.Gender = string(constant.GenderUndisclosed)
	}
	if string(constant.ParseGender(req.Gender)) != req.Gender {
		return fmt.Errorf("%w: unknown gender %q", appErrors.ErrInvalidInput, req.Gender)
	}
	return nil
}

func applyPatient(p *entity.Patient, req dto.PatientRequest) {
	p.FullName = req.FullName
	p.Age = req.Age
	p.SetGender(constant.ParseGender(req.Gender))
	p.Phone = req.Phone
	p.Notes = req.Notes
	p.Tags = req.Tags
}
