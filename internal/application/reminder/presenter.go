package reminder

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
)

// ForegroundPresentation is applied to every reminder firing in the foreground.
const ForegroundPresentation = constant.PresentBanner | constant.PresentSound | constant.PresentList

// Presenter decides how fired reminders are surfaced while the process runs.
type Presenter struct {
	log logger.Logger
}

// NewPresenter creates a Presenter.
func NewPresenter(log logger.Logger) *Presenter {
	return &Presenter{log: log}
}

// WillPresent always shows a banner with sound and keeps the reminder in the list.
func (p *Presenter) WillPresent(_ context.Context, reminder *entity.PendingReminder) constant.PresentationOptions {
	p.log.Debug(fmt.Sprintf("Presenting reminder %s in foreground", reminder.NotificationID))
	return ForegroundPresentation
}
