package service

import (
	"context"
	"drnote/internal/application/dto"
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

type recordService struct {
	patientRepo      repository.PatientRepository
	noteRepo         repository.NoteRepository
	prescriptionRepo repository.PrescriptionRepository
	log              logger.Logger
	now              func() time.Time
}

// NewRecordService creates a new instance of RecordService implementation.
func NewRecordService(
	patientRepo repository.PatientRepository,
	noteRepo repository.NoteRepository,
	prescriptionRepo repository.PrescriptionRepository,
	log logger.Logger,
) RecordService {
	return &recordService{
		patientRepo:      patientRepo,
		noteRepo:         noteRepo,
		prescriptionRepo: prescriptionRepo,
		log:              log,
		now:              time.Now,
	}
}

// ListNotes retrieves a patient's notes, newest first.
func (s *recordService) ListNotes(ctx context.Context, patientID uint) ([]dto.NoteResponse, error) {
	if err := s.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list notes of patient %d", patientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToNoteResponseList(notes), nil
}

// CreateNote adds a note to a patient's chart.
func (s *recordService) CreateNote(ctx context.Context, patientID uint, req dto.NoteRequest) (*dto.NoteResponse, error) {
	if err := validateNote(&req); err != nil {
		return nil, err
	}
	if err := s.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	note := &entity.Note{PatientID: patientID, Title: req.Title, Body: req.Body, CreatedAt: s.now()}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create note for patient %d", patientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created note %d for patient %d", note.ID, patientID))
	resp := dto.ToNoteResponse(note)
	return &resp, nil
}

// UpdateNote replaces the title and body of a note.
func (s *recordService) UpdateNote(ctx context.Context, patientID, noteID uint, req dto.NoteRequest) (*dto.NoteResponse, error) {
	if err := validateNote(&req); err != nil {
		return nil, err
	}
	note, err := s.findNote(ctx, patientID, noteID)
	if err != nil {
		return nil, err
	}
	note.Title = req.Title
	note.Body = req.Body
	if err := s.noteRepo.Update(ctx, note); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update note %d", noteID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	resp := dto.ToNoteResponse(note)
	return &resp, nil
}

// DeleteNote deletes a note.
func (s *recordService) DeleteNote(ctx context.Context, patientID, noteID uint) error {
	if _, err := s.findNote(ctx, patientID, noteID); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete note %d", noteID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted note %d of patient %d", noteID, patientID))
	return nil
}

// ListPrescriptions retrieves a patient's prescriptions, newest first.
func (s *recordService) ListPrescriptions(ctx context.Context, patientID uint) ([]dto.PrescriptionResponse, error) {
	if err := s.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	list, err := s.prescriptionRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list prescriptions of patient %d", patientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToPrescriptionResponseList(list), nil
}

// CreatePrescription adds a prescription to a patient's chart.
func (s *recordService) CreatePrescription(ctx context.Context, patientID uint, req dto.PrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if err := validatePrescription(&req); err != nil {
		return nil, err
	}
	if err := s.ensurePatient(ctx, patientID); err != nil {
		return nil, err
	}
	rx := &entity.Prescription{
		PatientID:    patientID,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		CreatedAt:    s.now(),
	}
	if err := s.prescriptionRepo.Create(ctx, rx); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create prescription for patient %d", patientID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created prescription %d for patient %d", rx.ID, patientID))
	resp := dto.ToPrescriptionResponse(rx)
	return &resp, nil
}

// UpdatePrescription replaces the editable fields of a prescription.
func (s *recordService) UpdatePrescription(ctx context.Context, patientID, prescriptionID uint, req dto.PrescriptionRequest) (*dto.PrescriptionResponse, error) {
	if err := validatePrescription(&req); err != nil {
		return nil, err
	}
	rx, err := s.findPrescription(ctx, patientID, prescriptionID)
	if err != nil {
		return nil, err
	}
	rx.Medication = req.Medication
	rx.Dosage = req.Dosage
	rx.Instructions = req.Instructions
	if err := s.prescriptionRepo.Update(ctx, rx); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update prescription %d", prescriptionID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	resp := dto.ToPrescriptionResponse(rx)
	return &resp, nil
}

// DeletePrescription deletes a prescription.
func (s *recordService) DeletePrescription(ctx context.Context, patientID, prescriptionID uint) error {
	if _, err := s.findPrescription(ctx, patientID, prescriptionID); err != nil {
		return err
	}
	if err := s.prescriptionRepo.Delete(ctx, prescriptionID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete prescription %d", prescriptionID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted prescription %d of patient %d", prescriptionID, patientID))
	return nil
}

func (s *recordService) ensurePatient(ctx context.Context, patientID uint) error {
	if _, err := s.patientRepo.FindByID(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrPatientNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get patient %d", patientID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *recordService) findNote(ctx context.Context, patientID, noteID uint) (*entity.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNoteNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get note %d", noteID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if note.PatientID != patientID {
		return nil, appErrors.ErrNoteNotFound
	}
	return note, nil
}

func (s *recordService) findPrescription(ctx context.Context, patientID, prescriptionID uint) (*entity.Prescription, error) {
	rx, err := s.prescriptionRepo.FindByID(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPrescriptionNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get prescription %d", prescriptionID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if rx.PatientID != patientID {
		return nil, appErrors.ErrPrescriptionNotFound
	}
	return rx, nil
}

func validateNote(req *dto.NoteRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", appErrors.ErrInvalidInput)
	}
	return nil
}

func validatePrescription(req *dto.PrescriptionRequest) error {
	req.Medication = strings.TrimSpace(req.Medication)
	if req.Medication == "" {
		return fmt.Errorf("%w: medication is required", appErrors.ErrInvalidInput)
	}
	return nil
}
