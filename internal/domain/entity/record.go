package entity

import "time"

// Note is a free-text clinical note kept on a patient's chart.
type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PatientID uint      `gorm:"column:patient_id;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Body      *string   `gorm:"column:body;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName specifies the table name for the Note entity.
func (Note) TableName() string {
	return "notes"
}

// Prescription is a medication prescribed to a patient.
type Prescription struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	PatientID    uint      `gorm:"column:patient_id;not null;index"`
	Medication   string    `gorm:"column:medication;not null"`
	Dosage       *string   `gorm:"column:dosage"`       // e.g. "500mg twice daily"
	Instructions *string   `gorm:"column:instructions;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

// TableName specifies the table name for the Prescription entity.
func (Prescription) TableName() string {
	return "prescriptions"
}
