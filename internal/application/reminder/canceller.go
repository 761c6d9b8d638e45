package reminder

import (
	"context"
	"drnote/internal/pkg/logger"
	"fmt"
)

// Canceller removes pending reminders.
type Canceller struct {
	sink Sink
	log  logger.Logger
}

// NewCanceller creates a Canceller.
func NewCanceller(sink Sink, log logger.Logger) *Canceller {
	return &Canceller{sink: sink, log: log}
}

// Cancel removes the pending reminder for notificationID if there is one.
// Failures are logged only.
func (c *Canceller) Cancel(ctx context.Context, notificationID string) {
	if notificationID == "" {
		return
	}
	if err := c.sink.RemovePending(ctx, notificationID); err != nil {
		c.log.Error(fmt.Sprintf("Failed to cancel reminder %s", notificationID), err)
		return
	}
	c.log.Debug(fmt.Sprintf("Cancelled reminder %s", notificationID))
}
