package entity

import (
	"drnote/internal/domain/constant"
	"time"
)

// Appointment is a scheduled visit for a patient.
type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PatientID uint      `gorm:"column:patient_id;not null;index"`
	Patient   *Patient  `gorm:"foreignKey:PatientID"`
	Date      time.Time `gorm:"column:date;not null;index"`
	Reason    string    `gorm:"column:reason;not null"`
	Notes     *string   `gorm:"column:notes;type:text"`
	Status    string    `gorm:"column:status;not null;default:scheduled"`
	// NotificationID correlates the appointment with its reminder.
	// Generated once at creation and never changed.
	NotificationID string    `gorm:"column:notification_id;not null;uniqueIndex"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Appointment entity.
func (Appointment) TableName() string {
	return "appointments"
}

// PatientName returns the patient's display name, or "" when unknown.
func (a *Appointment) PatientName() string {
	if a.Patient == nil {
		return ""
	}
	return a.Patient.FullName
}

// IsScheduled reports whether the appointment is still expected to happen.
func (a *Appointment) IsScheduled() bool {
	return a.Status == "" || a.Status == constant.AppointmentStatusScheduled
}

// AppointmentEvent is emitted by the record store write path after each mutation.
type AppointmentEvent struct {
	Type        constant.AppointmentEventType
	Appointment Appointment // Copy taken at emit time
	OccurredAt  time.Time
}
