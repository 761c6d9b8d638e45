// Package reminder keeps one pending notification in sync with each
// appointment. The Coordinator consumes appointment lifecycle events and
// drives the Scheduler and Canceller against a Sink, the notification
// service the process registers reminders with.
package reminder

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
)

// Sink is the notification service reminders are registered with.
type Sink interface {
	// Add registers a pending reminder keyed by its notification ID.
	Add(ctx context.Context, reminder *entity.PendingReminder) error
	// RemovePending removes pending reminders. Unknown IDs are ignored.
	RemovePending(ctx context.Context, notificationIDs ...string) error
	// AuthorizationStatus returns the user's current decision.
	AuthorizationStatus(ctx context.Context) (constant.AuthorizationStatus, error)
	// RequestAuthorization asks the user when no decision exists yet.
	RequestAuthorization(ctx context.Context, opts constant.AuthorizationOptions) (bool, error)
	// SetPresentationHandler registers the foreground presentation decision.
	SetPresentationHandler(handler func(ctx context.Context, reminder *entity.PendingReminder) constant.PresentationOptions)
}
