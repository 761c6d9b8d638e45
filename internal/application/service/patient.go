package service

import (
	"context"
	"drnote/internal/application/dto"
)

// PatientService defines the interface for patient-related business logic.
type PatientService interface {
	// CreatePatient creates a patient.
	CreatePatient(ctx context.Context, req dto.PatientRequest) (*dto.PatientResponse, error)
	// GetPatient retrieves a patient by ID.
	GetPatient(ctx context.Context, id uint) (*dto.PatientResponse, error)
	// ListPatients retrieves patients whose name contains query.
	ListPatients(ctx context.Context, query string) ([]dto.PatientResponse, error)
	// UpdatePatient replaces the editable fields of a patient.
	UpdatePatient(ctx context.Context, id uint, req dto.PatientRequest) (*dto.PatientResponse, error)
	// DeletePatient deletes a patient with its appointments, notes and prescriptions.
	DeletePatient(ctx context.Context, id uint) error
}
