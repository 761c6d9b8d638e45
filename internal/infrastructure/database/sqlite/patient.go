package sqlite

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new instance of PatientRepository.
func NewPatientRepository(db *gorm.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

// FindByID retrieves a patient by ID.
func (r *patientRepository) FindByID(ctx context.Context, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find patient by id %d: %w", id, err)
	}
	return &patient, nil
}

// FindAll retrieves patients ordered by name, optionally filtered by a name fragment.
func (r *patientRepository) FindAll(ctx context.Context, nameQuery string) ([]*entity.Patient, error) {
	var patients []*entity.Patient
	q := r.db.WithContext(ctx).Order("full_name asc")
	if s := strings.TrimSpace(nameQuery); s != "" {
		q = q.Where("full_name LIKE ?", "%"+s+"%")
	}
	if err := q.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to find patients: %w", err)
	}
	return patients, nil
}

// Create creates a new patient.
func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient %s: %w", patient.FullName, err)
	}
	return nil
}

// Update updates an existing patient.
func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	// Use Save to update all fields, including zero values
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient %d: %w", patient.ID, err)
	}
	return nil
}

// Delete deletes a patient by ID.
func (r *patientRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Patient{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}
	return nil
}
