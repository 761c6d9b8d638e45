package entity

import "time"

// PendingReminder is a one-shot notification registered with the notification center.
type PendingReminder struct {
	NotificationID string    `gorm:"column:notification_id;primaryKey"`
	Title          string    `gorm:"column:title"`
	Body           string    `gorm:"column:body;type:text"` // Snapshot taken at schedule time
	FireAt         time.Time `gorm:"column:fire_at;index"`
	Repeats        bool      `gorm:"column:repeats"`
	AppointmentAt  time.Time `gorm:"column:appointment_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the PendingReminder entity.
func (PendingReminder) TableName() string {
	return "pending_reminders"
}

// DeliveredReminder is an entry in the notification list.
type DeliveredReminder struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	NotificationID string    `gorm:"column:notification_id;index"`
	Title          string    `gorm:"column:title"`
	Body           string    `gorm:"column:body;type:text"`
	Banner         bool      `gorm:"column:banner"`
	Sound          bool      `gorm:"column:sound"`
	DeliveredAt    time.Time `gorm:"column:delivered_at;index"`
}

// TableName specifies the table name for the DeliveredReminder entity.
func (DeliveredReminder) TableName() string {
	return "delivered_reminders"
}
