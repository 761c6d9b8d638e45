package repository

import (
	"context"
	"drnote/internal/domain/entity"
)

// NoteRepository defines the interface for note data operations.
type NoteRepository interface {
	// FindByID retrieves a note by ID.
	FindByID(ctx context.Context, id uint) (*entity.Note, error)
	// FindByPatientID retrieves a patient's notes, newest first.
	FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Note, error)
	// Create creates a new note.
	Create(ctx context.Context, note *entity.Note) error
	// Update updates an existing note.
	Update(ctx context.Context, note *entity.Note) error
	// Delete deletes a note by ID.
	Delete(ctx context.Context, id uint) error
	// DeleteByPatientID deletes all notes of a patient.
	DeleteByPatientID(ctx context.Context, patientID uint) error
}

// PrescriptionRepository defines the interface for prescription data operations.
type PrescriptionRepository interface {
	// FindByID retrieves a prescription by ID.
	FindByID(ctx context.Context, id uint) (*entity.Prescription, error)
	// FindByPatientID retrieves a patient's prescriptions, newest first.
	FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Prescription, error)
	// Create creates a new prescription.
	Create(ctx context.Context, prescription *entity.Prescription) error
	// Update updates an existing prescription.
	Update(ctx context.Context, prescription *entity.Prescription) error
	// Delete deletes a prescription by ID.
	Delete(ctx context.Context, id uint) error
	// DeleteByPatientID deletes all prescriptions of a patient.
	DeleteByPatientID(ctx context.Context, patientID uint) error
}
