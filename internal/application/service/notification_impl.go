package service

import (
	"context"
	"drnote/internal/application/dto"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
	"time"
)

// NotificationCenter is the part of the notification center the API reads and controls.
type NotificationCenter interface {
	PendingReminders(ctx context.Context) ([]*entity.PendingReminder, error)
	DeliveredReminders(ctx context.Context, limit int) ([]*entity.DeliveredReminder, error)
	AuthorizationStatus(ctx context.Context) (constant.AuthorizationStatus, error)
	SetAuthorizationStatus(ctx context.Context, status constant.AuthorizationStatus) error
	NextRun(notificationID string) (time.Time, bool)
}

// AuthorizationCache reports the status resolved at start-up.
type AuthorizationCache interface {
	Status() constant.AuthorizationStatus
}

type notificationService struct {
	center NotificationCenter
	cache  AuthorizationCache
	log    logger.Logger
}

// NewNotificationService creates a new instance of NotificationService implementation.
func NewNotificationService(center NotificationCenter, cache AuthorizationCache, log logger.Logger) NotificationService {
	return &notificationService{center: center, cache: cache, log: log}
}

// ListPending retrieves reminders waiting to fire.
func (s *notificationService) ListPending(ctx context.Context) ([]dto.PendingReminderResponse, error) {
	reminders, err := s.center.PendingReminders(ctx)
	if err != nil {
		s.log.Error("Failed to list pending reminders", err)
		return nil, err
	}
	list := dto.ToPendingReminderResponseList(reminders)
	for i := range list {
		if next, ok := s.center.NextRun(list[i].NotificationID); ok {
			list[i].NextRun = &next
		}
	}
	return list, nil
}

// ListDelivered retrieves the notification list.
func (s *notificationService) ListDelivered(ctx context.Context, limit int) ([]dto.DeliveredReminderResponse, error) {
	delivered, err := s.center.DeliveredReminders(ctx, limit)
	if err != nil {
		s.log.Error("Failed to list delivered reminders", err)
		return nil, err
	}
	return dto.ToDeliveredReminderResponseList(delivered), nil
}

// GetAuthorization reports the persisted and the cached authorization status.
func (s *notificationService) GetAuthorization(ctx context.Context) (*dto.AuthorizationResponse, error) {
	status, err := s.center.AuthorizationStatus(ctx)
	if err != nil {
		s.log.Error("Failed to read authorization status", err)
		return nil, err
	}
	return &dto.AuthorizationResponse{Status: status.String(), Cached: s.cache.Status().String()}, nil
}

// SetAuthorization records a decision made in the user's settings. The
// cached status keeps its start-up value; delivery follows the new one.
func (s *notificationService) SetAuthorization(ctx context.Context, status constant.AuthorizationStatus) (*dto.AuthorizationResponse, error) {
	if err := s.center.SetAuthorizationStatus(ctx, status); err != nil {
		s.log.Error(fmt.Sprintf("Failed to set authorization status to %s", status), err)
		return nil, err
	}
	return s.GetAuthorization(ctx)
}
