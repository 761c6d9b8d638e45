package repository

import (
	"context"
	"drnote/internal/domain/entity"
)

// PatientRepository defines the interface for patient data operations.
type PatientRepository interface {
	// FindByID retrieves a patient by ID.
	FindByID(ctx context.Context, id uint) (*entity.Patient, error)
	// FindAll retrieves patients ordered by name, optionally filtered by a name fragment.
	FindAll(ctx context.Context, nameQuery string) ([]*entity.Patient, error)
	// Create creates a new patient.
	Create(ctx context.Context, patient *entity.Patient) error
	// Update updates an existing patient.
	Update(ctx context.Context, patient *entity.Patient) error
	// Delete deletes a patient by ID.
	Delete(ctx context.Context, id uint) error
}
