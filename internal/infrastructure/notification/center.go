// Package notification implements the local notification center: it holds
// pending one-shot reminders keyed by notification ID, fires them through
// cron, and delivers them according to the user's authorization decision.
package notification

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"drnote/internal/infrastructure/scheduler"
	appErrors "drnote/internal/pkg/errors"
	"drnote/internal/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// restoreDelay is how long after start-up an overdue reminder is delivered.
const restoreDelay = 5 * time.Second

// Deliverer pushes a fired reminder to the user as a banner.
type Deliverer interface {
	Deliver(ctx context.Context, reminder *entity.PendingReminder, sound bool) error
}

// Prompter asks the user whether notifications may be delivered.
type Prompter interface {
	Prompt(ctx context.Context, opts constant.AuthorizationOptions) (bool, error)
}

// PresentationHandler decides how a reminder firing in the foreground is shown.
type PresentationHandler func(ctx context.Context, reminder *entity.PendingReminder) constant.PresentationOptions

type registration struct {
	entryID cron.EntryID
	fireAt  time.Time
}

// Center is the process-wide notification center.
type Center struct {
	cron      *scheduler.Scheduler
	pending   repository.PendingReminderRepository
	delivered repository.DeliveredReminderRepository
	settings  repository.NotificationSettingRepository
	deliverer Deliverer
	prompter  Prompter
	log       logger.Logger
	now       func() time.Time

	mu      sync.Mutex // Serializes registration calls and guards jobs
	jobs    map[string]*registration
	authMu  sync.Mutex
	present PresentationHandler
	hMu     sync.RWMutex
}

// Option customizes a Center.
type Option func(*Center)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// NewCenter creates a notification center. prompter may be nil, in which
// case authorization requests fail until the status is set externally.
func NewCenter(
	cronScheduler *scheduler.Scheduler,
	pending repository.PendingReminderRepository,
	delivered repository.DeliveredReminderRepository,
	settings repository.NotificationSettingRepository,
	deliverer Deliverer,
	prompter Prompter,
	log logger.Logger,
	opts ...Option,
) *Center {
	c := &Center{
		cron:      cronScheduler,
		pending:   pending,
		delivered: delivered,
		settings:  settings,
		deliverer: deliverer,
		prompter:  prompter,
		log:       log,
		now:       time.Now,
		jobs:      make(map[string]*registration),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// formatCronSpec generates a cron spec string matching the calendar components of t.
func formatCronSpec(t time.Time) string {
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", t.Second(), t.Minute(), t.Hour(), t.Day(), t.Month())
}

// Add registers a one-shot reminder. A reminder already registered under the
// same notification ID is replaced.
func (c *Center) Add(ctx context.Context, reminder *entity.PendingReminder) error {
	if reminder == nil || reminder.NotificationID == "" {
		return fmt.Errorf("%w: notification ID is required", appErrors.ErrScheduling)
	}
	if reminder.Repeats {
		return fmt.Errorf("%w: repeating reminders are not supported", appErrors.ErrScheduling)
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The old job stays live until its row has been replaced.
	if err := c.pending.Save(ctx, reminder); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	c.removeJobLocked(reminder.NotificationID)
	if err := c.registerLocked(reminder.NotificationID, reminder.FireAt); err != nil {
		if delErr := c.pending.Delete(ctx, reminder.NotificationID); delErr != nil {
			c.log.Error(fmt.Sprintf("Failed to roll back pending reminder %s", reminder.NotificationID), delErr)
		}
		return err
	}
	c.log.Info(fmt.Sprintf("Registered reminder %s to fire at %v", reminder.NotificationID, reminder.FireAt))
	return nil
}

// RemovePending removes pending reminders. Unknown IDs are ignored.
func (c *Center) RemovePending(ctx context.Context, notificationIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range notificationIDs {
		c.removeJobLocked(id)
	}
	if err := c.pending.Delete(ctx, notificationIDs...); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

// PendingReminders lists registered reminders ordered by fire time.
func (c *Center) PendingReminders(ctx context.Context) ([]*entity.PendingReminder, error) {
	reminders, err := c.pending.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return reminders, nil
}

// NextRun returns when the cron job of a pending reminder next runs. ok is
// false when no job is registered for the ID.
func (c *Center) NextRun(notificationID string) (next time.Time, ok bool) {
	c.mu.Lock()
	reg, found := c.jobs[notificationID]
	c.mu.Unlock()
	if !found {
		return time.Time{}, false
	}
	return c.cron.NextRun(reg.entryID)
}

// DeliveredReminders lists the notification list, newest first.
func (c *Center) DeliveredReminders(ctx context.Context, limit int) ([]*entity.DeliveredReminder, error) {
	delivered, err := c.delivered.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return delivered, nil
}

// SetPresentationHandler registers the foreground presentation decision.
func (c *Center) SetPresentationHandler(handler func(ctx context.Context, reminder *entity.PendingReminder) constant.PresentationOptions) {
	c.hMu.Lock()
	defer c.hMu.Unlock()
	c.present = handler
}

// Restore re-registers persisted reminders after a restart. Reminders whose
// appointment already started are dropped; overdue ones fire shortly.
func (c *Center) Restore(ctx context.Context) error {
	reminders, err := c.pending.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	now := c.now()
	restored, dropped := 0, 0

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range reminders {
		if !r.AppointmentAt.IsZero() && !now.Before(r.AppointmentAt) {
			if err := c.pending.Delete(ctx, r.NotificationID); err != nil {
				c.log.Error(fmt.Sprintf("Failed to drop stale reminder %s during restore", r.NotificationID), err)
				continue
			}
			dropped++
			continue
		}
		if !r.FireAt.After(now) {
			r.FireAt = now.Add(restoreDelay)
			if err := c.pending.Save(ctx, r); err != nil {
				c.log.Error(fmt.Sprintf("Failed to move overdue reminder %s during restore", r.NotificationID), err)
				continue
			}
		}
		c.removeJobLocked(r.NotificationID)
		if err := c.registerLocked(r.NotificationID, r.FireAt); err != nil {
			c.log.Error(fmt.Sprintf("Failed to restore reminder %s", r.NotificationID), err)
			continue
		}
		restored++
	}
	c.log.Info(fmt.Sprintf("Notification center restore complete. Restored: %d, Dropped: %d", restored, dropped))
	return nil
}

// Stop stops the underlying scheduler.
func (c *Center) Stop() {
	c.cron.Stop()
}

func (c *Center) registerLocked(id string, fireAt time.Time) error {
	reg := &registration{fireAt: fireAt}
	spec := formatCronSpec(fireAt.In(c.cron.Location()))
	entryID, err := c.cron.AddJob(spec, func() { c.fire(id, reg) })
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	reg.entryID = entryID
	c.jobs[id] = reg
	return nil
}

func (c *Center) removeJobLocked(id string) {
	if reg, ok := c.jobs[id]; ok {
		c.cron.RemoveJob(reg.entryID)
		delete(c.jobs, id)
		c.log.Debug(fmt.Sprintf("Removed job %d for reminder %s", reg.entryID, id))
	}
}

// fire runs on the cron goroutine when a registration's calendar spec matches.
func (c *Center) fire(id string, reg *registration) {
	now := c.now()
	// Cron specs carry no year.
	if now.In(c.cron.Location()).Year() != reg.fireAt.In(c.cron.Location()).Year() {
		c.log.Debug(fmt.Sprintf("Skipping reminder %s: calendar match in the wrong year", id))
		return
	}

	ctx := context.Background()
	c.mu.Lock()
	if current, ok := c.jobs[id]; !ok || current != reg {
		c.mu.Unlock()
		return // Replaced or removed after cron dispatched the job
	}
	c.removeJobLocked(id)
	reminder, err := c.pending.FindByID(ctx, id)
	if err == nil {
		err = c.pending.Delete(ctx, id)
	}
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.log.Warn(fmt.Sprintf("Reminder %s fired but is no longer pending", id))
			return
		}
		c.log.Error(fmt.Sprintf("Failed to load fired reminder %s", id), err)
		return
	}
	c.deliver(ctx, reminder, now)
}

func (c *Center) deliver(ctx context.Context, reminder *entity.PendingReminder, now time.Time) {
	status, err := c.AuthorizationStatus(ctx)
	if err != nil {
		c.log.Error(fmt.Sprintf("Failed to read authorization before delivering %s", reminder.NotificationID), err)
		return
	}
	if status != constant.AuthorizationAuthorized {
		c.log.Warn(fmt.Sprintf("Reminder %s not delivered: authorization is %s", reminder.NotificationID, status))
		return
	}
	if !reminder.AppointmentAt.IsZero() && !now.Before(reminder.AppointmentAt) {
		c.log.Warn(fmt.Sprintf("Reminder %s not delivered: appointment already started", reminder.NotificationID))
		return
	}

	opts := constant.PresentList
	c.hMu.RLock()
	handler := c.present
	c.hMu.RUnlock()
	if handler != nil {
		opts = handler(ctx, reminder)
	}

	banner := opts.Has(constant.PresentBanner)
	sound := opts.Has(constant.PresentSound)
	if banner && c.deliverer != nil {
		if err := c.deliverer.Deliver(ctx, reminder, sound); err != nil {
			c.log.Error(fmt.Sprintf("Failed to deliver reminder %s", reminder.NotificationID), err)
			banner = false
		}
	}

	if opts.Has(constant.PresentList) {
		record := &entity.DeliveredReminder{
			NotificationID: reminder.NotificationID,
			Title:          reminder.Title,
			Body:           reminder.Body,
			Banner:         banner,
			Sound:          banner && sound,
			DeliveredAt:    now,
		}
		if err := c.delivered.Create(ctx, record); err != nil {
			c.log.Error(fmt.Sprintf("Failed to record delivery of reminder %s", reminder.NotificationID), err)
		}
	}
	c.log.Info(fmt.Sprintf("Delivered reminder %s (banner=%t, sound=%t)", reminder.NotificationID, banner, sound))
}
