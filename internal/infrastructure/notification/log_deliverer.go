package notification

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
)

// LogDeliverer writes banners to the log. Used when no push channel is configured.
type LogDeliverer struct {
	log logger.Logger
}

// NewLogDeliverer creates a LogDeliverer.
func NewLogDeliverer(log logger.Logger) *LogDeliverer {
	return &LogDeliverer{log: log}
}

// Deliver logs the reminder.
func (d *LogDeliverer) Deliver(_ context.Context, reminder *entity.PendingReminder, sound bool) error {
	d.log.Info(fmt.Sprintf("BANNER [%s] %s: %s (sound=%t)", reminder.NotificationID, reminder.Title, reminder.Body, sound))
	return nil
}
