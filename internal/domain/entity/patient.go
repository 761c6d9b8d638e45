package entity

import (
	"drnote/internal/domain/constant"
	"time"
)

// Patient is a person receiving care.
type Patient struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	FullName  string    `gorm:"column:full_name;not null;index"`
	Age       *int      `gorm:"column:age"`
	GenderRaw string    `gorm:"column:gender;not null;default:undisclosed"`
	Phone     *string   `gorm:"column:phone"`
	Notes     *string   `gorm:"column:notes;type:text"`
	Tags      *string   `gorm:"column:tags"` // Comma-separated, e.g. "diabetes, hypertension"
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Patient entity.
func (Patient) TableName() string {
	return "patients"
}

// GetGender returns the typed gender.
func (p *Patient) GetGender() constant.Gender {
	return constant.ParseGender(p.GenderRaw)
}

// SetGender sets the gender.
func (p *Patient) SetGender(g constant.Gender) {
	p.GenderRaw = string(g)
}
