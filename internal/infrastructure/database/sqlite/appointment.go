package sqlite

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID retrieves an appointment by ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	var appt entity.Appointment
	if err := r.db.WithContext(ctx).Preload("Patient").First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find appointment by id %d: %w", id, err)
	}
	return &appt, nil
}

// FindAll retrieves appointments ordered by date. Zero from/to mean unbounded.
func (r *appointmentRepository) FindAll(ctx context.Context, from, to time.Time) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	q := r.db.WithContext(ctx).Preload("Patient").Order("date asc")
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date < ?", to)
	}
	if err := q.Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	return appts, nil
}

// FindByPatientID retrieves all appointments of a patient.
func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uint) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	if err := r.db.WithContext(ctx).Preload("Patient").Where("patient_id = ?", patientID).Order("date asc").Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointments of patient %d: %w", patientID, err)
	}
	return appts, nil
}

// Create creates a new appointment.
func (r *appointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(appt).Error; err != nil {
		return fmt.Errorf("failed to create appointment for patient %d: %w", appt.PatientID, err)
	}
	return nil
}

// Update updates an existing appointment. The notification ID is never written.
func (r *appointmentRepository) Update(ctx context.Context, appt *entity.Appointment) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{ID: appt.ID}).
		Select("patient_id", "date", "reason", "notes", "status", "updated_at").
		Updates(map[string]interface{}{
			"patient_id": appt.PatientID,
			"date":       appt.Date,
			"reason":     appt.Reason,
			"notes":      appt.Notes,
			"status":     appt.Status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update appointment %d: %w", appt.ID, err)
	}
	return nil
}

// Delete deletes an appointment by ID.
func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Appointment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	return nil
}

// DeleteByPatientID deletes all appointments of a patient.
func (r *appointmentRepository) DeleteByPatientID(ctx context.Context, patientID uint) error {
	if err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.Appointment{}).Error; err != nil {
		return fmt.Errorf("failed to delete appointments of patient %d: %w", patientID, err)
	}
	return nil
}
