package service

import (
	"context"
	"drnote/internal/application/dto"
)

// RecordService defines the interface for a patient's chart: notes and prescriptions.
// Every operation is scoped to the patient; a record of another patient is not found.
type RecordService interface {
	// ListNotes retrieves a patient's notes, newest first.
	ListNotes(ctx context.Context, patientID uint) ([]dto.NoteResponse, error)
	// CreateNote adds a note to a patient's chart.
	CreateNote(ctx context.Context, patientID uint, req dto.NoteRequest) (*dto.NoteResponse, error)
	// UpdateNote replaces the title and body of a note.
	UpdateNote(ctx context.Context, patientID, noteID uint, req dto.NoteRequest) (*dto.NoteResponse, error)
	// DeleteNote deletes a note.
	DeleteNote(ctx context.Context, patientID, noteID uint) error

	// ListPrescriptions retrieves a patient's prescriptions, newest first.
	ListPrescriptions(ctx context.Context, patientID uint) ([]dto.PrescriptionResponse, error)
	// CreatePrescription adds a prescription to a patient's chart.
	CreatePrescription(ctx context.Context, patientID uint, req dto.PrescriptionRequest) (*dto.PrescriptionResponse, error)
	// UpdatePrescription replaces the editable fields of a prescription.
	UpdatePrescription(ctx context.Context, patientID, prescriptionID uint, req dto.PrescriptionRequest) (*dto.PrescriptionResponse, error)
	// DeletePrescription deletes a prescription.
	DeletePrescription(ctx context.Context, patientID, prescriptionID uint) error
}
