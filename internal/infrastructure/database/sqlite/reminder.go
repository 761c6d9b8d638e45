package sqlite

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pendingReminderRepository struct {
	db *gorm.DB
}

// NewPendingReminderRepository creates a new instance of PendingReminderRepository.
func NewPendingReminderRepository(db *gorm.DB) repository.PendingReminderRepository {
	return &pendingReminderRepository{db: db}
}

// FindByID retrieves a pending reminder by its notification ID.
func (r *pendingReminderRepository) FindByID(ctx context.Context, notificationID string) (*entity.PendingReminder, error) {
	var reminder entity.PendingReminder
	if err := r.db.WithContext(ctx).Where("notification_id = ?", notificationID).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pending reminder %s not found: %w", notificationID, err)
		}
		return nil, fmt.Errorf("failed to find pending reminder %s: %w", notificationID, err)
	}
	return &reminder, nil
}

// FindAll retrieves all pending reminders ordered by fire time.
func (r *pendingReminderRepository) FindAll(ctx context.Context) ([]*entity.PendingReminder, error) {
	var reminders []*entity.PendingReminder
	if err := r.db.WithContext(ctx).Order("fire_at asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to find pending reminders: %w", err)
	}
	return reminders, nil
}

// Save inserts the reminder or replaces the one with the same notification ID.
func (r *pendingReminderRepository) Save(ctx context.Context, reminder *entity.PendingReminder) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}},
			UpdateAll: true,
		}).
		Create(reminder).Error
	if err != nil {
		return fmt.Errorf("failed to save pending reminder %s: %w", reminder.NotificationID, err)
	}
	return nil
}

// Delete deletes pending reminders by notification ID. Missing IDs are ignored.
func (r *pendingReminderRepository) Delete(ctx context.Context, notificationIDs ...string) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("notification_id IN ?", notificationIDs).Delete(&entity.PendingReminder{}).Error; err != nil {
		return fmt.Errorf("failed to delete pending reminders %v: %w", notificationIDs, err)
	}
	return nil
}

type deliveredReminderRepository struct {
	db *gorm.DB
}

// NewDeliveredReminderRepository creates a new instance of DeliveredReminderRepository.
func NewDeliveredReminderRepository(db *gorm.DB) repository.DeliveredReminderRepository {
	return &deliveredReminderRepository{db: db}
}

// Create records a delivered reminder.
func (r *deliveredReminderRepository) Create(ctx context.Context, delivered *entity.DeliveredReminder) error {
	if err := r.db.WithContext(ctx).Create(delivered).Error; err != nil {
		return fmt.Errorf("failed to record delivery of %s: %w", delivered.NotificationID, err)
	}
	return nil
}

// FindRecent retrieves the most recent deliveries, newest first.
func (r *deliveredReminderRepository) FindRecent(ctx context.Context, limit int) ([]*entity.DeliveredReminder, error) {
	var delivered []*entity.DeliveredReminder
	q := r.db.WithContext(ctx).Order("delivered_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&delivered).Error; err != nil {
		return nil, fmt.Errorf("failed to find delivered reminders: %w", err)
	}
	return delivered, nil
}

type notificationSettingRepository struct {
	db *gorm.DB
}

// NewNotificationSettingRepository creates a new instance of NotificationSettingRepository.
func NewNotificationSettingRepository(db *gorm.DB) repository.NotificationSettingRepository {
	return &notificationSettingRepository{db: db}
}

// Get returns the stored setting, or an undetermined one if none was saved yet.
func (r *notificationSettingRepository) Get(ctx context.Context) (*entity.NotificationSetting, error) {
	var setting entity.NotificationSetting
	err := r.db.WithContext(ctx).Where("id = ?", entity.NotificationSettingID).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.NotificationSetting{ID: entity.NotificationSettingID}, nil
		}
		return nil, fmt.Errorf("failed to load notification setting: %w", err)
	}
	return &setting, nil
}

// Save stores the setting.
func (r *notificationSettingRepository) Save(ctx context.Context, setting *entity.NotificationSetting) error {
	setting.ID = entity.NotificationSettingID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(setting).Error
	if err != nil {
		return fmt.Errorf("failed to save notification setting: %w", err)
	}
	return nil
}
