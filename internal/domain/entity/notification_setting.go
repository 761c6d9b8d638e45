package entity

import (
	"drnote/internal/domain/constant"
	"time"
)

// NotificationSettingID is the primary key of the single settings row.
const NotificationSettingID uint = 1

// NotificationSetting holds the user's persisted authorization decision.
type NotificationSetting struct {
	ID        uint      `gorm:"primaryKey"`
	Status    int       `gorm:"column:status"`
	Options   uint      `gorm:"column:options"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the NotificationSetting entity.
func (NotificationSetting) TableName() string {
	return "notification_settings"
}

// GetStatus returns the status as an AuthorizationStatus.
func (s *NotificationSetting) GetStatus() constant.AuthorizationStatus {
	return constant.AuthorizationStatus(s.Status)
}

// SetStatus sets the authorization status.
func (s *NotificationSetting) SetStatus(status constant.AuthorizationStatus) {
	s.Status = status.Int()
}
