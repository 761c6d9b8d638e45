package repository

import (
	"context"
	"drnote/internal/domain/entity"
)

// PendingReminderRepository defines the persistence of registered reminders.
type PendingReminderRepository interface {
	// FindByID retrieves a pending reminder by its notification ID.
	FindByID(ctx context.Context, notificationID string) (*entity.PendingReminder, error)
	// FindAll retrieves all pending reminders ordered by fire time (used for rescheduling on startup).
	FindAll(ctx context.Context) ([]*entity.PendingReminder, error)
	// Save inserts the reminder or replaces the one with the same notification ID.
	Save(ctx context.Context, reminder *entity.PendingReminder) error
	// Delete deletes pending reminders by notification ID. Missing IDs are ignored.
	Delete(ctx context.Context, notificationIDs ...string) error
}

// DeliveredReminderRepository defines the persistence of the notification list.
type DeliveredReminderRepository interface {
	// Create records a delivered reminder.
	Create(ctx context.Context, delivered *entity.DeliveredReminder) error
	// FindRecent retrieves the most recent deliveries, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.DeliveredReminder, error)
}

// NotificationSettingRepository defines the persistence of the authorization decision.
type NotificationSettingRepository interface {
	// Get returns the stored setting, or an undetermined one if none was saved yet.
	Get(ctx context.Context) (*entity.NotificationSetting, error)
	// Save stores the setting.
	Save(ctx context.Context, setting *entity.NotificationSetting) error
}
