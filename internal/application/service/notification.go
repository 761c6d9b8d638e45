package service

import (
	"context"
	"drnote/internal/application/dto"
	"drnote/internal/domain/constant"
)

// NotificationService exposes the notification center's state.
type NotificationService interface {
	// ListPending retrieves reminders waiting to fire, earliest first.
	ListPending(ctx context.Context) ([]dto.PendingReminderResponse, error)
	// ListDelivered retrieves the notification list, newest first.
	ListDelivered(ctx context.Context, limit int) ([]dto.DeliveredReminderResponse, error)
	// GetAuthorization reports the persisted and the cached authorization status.
	GetAuthorization(ctx context.Context) (*dto.AuthorizationResponse, error)
	// SetAuthorization records a decision made in the user's settings.
	SetAuthorization(ctx context.Context, status constant.AuthorizationStatus) (*dto.AuthorizationResponse, error)
}
