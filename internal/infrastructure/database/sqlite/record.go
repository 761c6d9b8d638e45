package sqlite

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *gorm.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

// FindByID retrieves a note by ID.
func (r *noteRepository) FindByID(ctx context.Context, id uint) (*entity.Note, error) {
	var note entity.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("note with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find note by id %d: %w", id, err)
	}
	return &note, nil
}

// FindByPatientID retrieves a patient's notes, newest first.
func (r *noteRepository) FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Note, error) {
	var notes []*entity.Note
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at desc, id desc").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to find notes of patient %d: %w", patientID, err)
	}
	return notes, nil
}

// Create creates a new note.
func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note for patient %d: %w", note.PatientID, err)
	}
	return nil
}

// Update updates an existing note.
func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return fmt.Errorf("failed to update note %d: %w", note.ID, err)
	}
	return nil
}

// Delete deletes a note by ID.
func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Note{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// DeleteByPatientID deletes all notes of a patient.
func (r *noteRepository) DeleteByPatientID(ctx context.Context, patientID uint) error {
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.Note{}).Error; err != nil {
		return fmt.Errorf("failed to delete notes of patient %d: %w", patientID, err)
	}
	return nil
}

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository creates a new instance of PrescriptionRepository.
func NewPrescriptionRepository(db *gorm.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

// FindByID retrieves a prescription by ID.
func (r *prescriptionRepository) FindByID(ctx context.Context, id uint) (*entity.Prescription, error) {
	var rx entity.Prescription
	if err := r.db.WithContext(ctx).First(&rx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("prescription with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find prescription by id %d: %w", id, err)
	}
	return &rx, nil
}

// FindByPatientID retrieves a patient's prescriptions, newest first.
func (r *prescriptionRepository) FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Prescription, error) {
	var list []*entity.Prescription
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("created_at desc, id desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find prescriptions of patient %d: %w", patientID, err)
	}
	return list, nil
}

// Create creates a new prescription.
func (r *prescriptionRepository) Create(ctx context.Context, rx *entity.Prescription) error {
	if err := r.db.WithContext(ctx).Create(rx).Error; err != nil {
		return fmt.Errorf("failed to create prescription for patient %d: %w", rx.PatientID, err)
	}
	return nil
}

// Update updates an existing prescription.
func (r *prescriptionRepository) Update(ctx context.Context, rx *entity.Prescription) error {
	if err := r.db.WithContext(ctx).Save(rx).Error; err != nil {
		return fmt.Errorf("failed to update prescription %d: %w", rx.ID, err)
	}
	return nil
}

// Delete deletes a prescription by ID.
func (r *prescriptionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Prescription{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete prescription %d: %w", id, err)
	}
	return nil
}

// DeleteByPatientID deletes all prescriptions of a patient.
func (r *prescriptionRepository) DeleteByPatientID(ctx context.Context, patientID uint) error {
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.Prescription{}).Error; err != nil {
		return fmt.Errorf("failed to delete prescriptions of patient %d: %w", patientID, err)
	}
	return nil
}
