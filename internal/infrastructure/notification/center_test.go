package notification

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"drnote/internal/infrastructure/database/sqlite"
	"drnote/internal/infrastructure/scheduler"
	"drnote/internal/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveryCall struct {
	ID    string
	Body  string
	Sound bool
}

type recordingDeliverer struct {
	mu    sync.Mutex
	calls []deliveryCall
	err   error
}

func (d *recordingDeliverer) Deliver(_ context.Context, r *entity.PendingReminder, sound bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, deliveryCall{ID: r.NotificationID, Body: r.Body, Sound: sound})
	return d.err
}

func (d *recordingDeliverer) Calls() []deliveryCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]deliveryCall, len(d.calls))
	copy(out, d.calls)
	return out
}

type countingPrompter struct {
	granted bool
	err     error
	calls   int
}

func (p *countingPrompter) Prompt(_ context.Context, _ constant.AuthorizationOptions) (bool, error) {
	p.calls++
	return p.granted, p.err
}

// failingPendingRepo fails Save while failSave is set.
type failingPendingRepo struct {
	repository.PendingReminderRepository
	failSave bool
}

func (r *failingPendingRepo) Save(ctx context.Context, reminder *entity.PendingReminder) error {
	if r.failSave {
		return errors.New("disk I/O error")
	}
	return r.PendingReminderRepository.Save(ctx, reminder)
}

type fixture struct {
	center    *Center
	pending   *failingPendingRepo
	deliverer *recordingDeliverer
	prompter  *countingPrompter
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Nop()
	db, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	f := &fixture{
		pending:   &failingPendingRepo{PendingReminderRepository: sqlite.NewPendingReminderRepository(db)},
		deliverer: &recordingDeliverer{},
		prompter:  &countingPrompter{granted: true},
		now:       time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}
	cronScheduler := scheduler.NewScheduler(time.UTC, log)
	f.center = NewCenter(
		cronScheduler,
		f.pending,
		sqlite.NewDeliveredReminderRepository(db),
		sqlite.NewNotificationSettingRepository(db),
		f.deliverer,
		f.prompter,
		log,
		WithClock(func() time.Time { return f.now }),
	)
	t.Cleanup(f.center.Stop)
	return f
}

func (f *fixture) reminder(id string, fireIn time.Duration) *entity.PendingReminder {
	return &entity.PendingReminder{
		NotificationID: id,
		Title:          "Appointment Reminder",
		Body:           "body of " + id,
		FireAt:         f.now.Add(fireIn),
		AppointmentAt:  f.now.Add(fireIn + 24*time.Hour),
	}
}

// fireNow runs the registered job for id as cron would at its fire time.
func (f *fixture) fireNow(t *testing.T, id string) {
	t.Helper()
	f.center.mu.Lock()
	reg, ok := f.center.jobs[id]
	f.center.mu.Unlock()
	require.True(t, ok, "no job registered for %s", id)
	f.now = reg.fireAt
	f.center.fire(id, reg)
}

func (f *fixture) authorize(t *testing.T, status constant.AuthorizationStatus) {
	t.Helper()
	require.NoError(t, f.center.SetAuthorizationStatus(context.Background(), status))
}

func TestCenter_AddReplacesSameID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))
	oldEntry := f.center.jobs["a"].entryID
	second := f.reminder("a", 2*time.Hour)
	second.Body = "replacement"
	require.NoError(t, f.center.Add(ctx, second))

	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "replacement", pending[0].Body)
	assert.Len(t, f.center.jobs, 1)

	_, ok := f.center.cron.NextRun(oldEntry)
	assert.False(t, ok, "replaced job must be removed from cron")
	next, ok := f.center.NextRun("a")
	require.True(t, ok)
	assert.Equal(t, second.FireAt.Hour(), next.Hour())
	assert.Equal(t, second.FireAt.Day(), next.Day())
}

func TestCenter_FailedReplacementKeepsOldReminderLive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	f.center.SetPresentationHandler(func(context.Context, *entity.PendingReminder) constant.PresentationOptions {
		return constant.PresentBanner | constant.PresentList
	})
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.pending.failSave = true
	replacement := f.reminder("a", 2*time.Hour)
	replacement.Body = "replacement"
	assert.Error(t, f.center.Add(ctx, replacement))
	f.pending.failSave = false

	// Row and job still agree on the original reminder.
	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "body of a", pending[0].Body)
	_, ok := f.center.NextRun("a")
	require.True(t, ok)

	f.fireNow(t, "a")
	calls := f.deliverer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "body of a", calls[0].Body)
}

func TestCenter_AddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Error(t, f.center.Add(ctx, nil))
	assert.Error(t, f.center.Add(ctx, &entity.PendingReminder{}))

	repeating := f.reminder("r", time.Hour)
	repeating.Repeats = true
	assert.Error(t, f.center.Add(ctx, repeating))
}

func TestCenter_RemovePendingIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	require.NoError(t, f.center.RemovePending(ctx, "a"))
	require.NoError(t, f.center.RemovePending(ctx, "a"))
	require.NoError(t, f.center.RemovePending(ctx, "unknown"))

	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Empty(t, f.center.jobs)
	_, ok := f.center.NextRun("a")
	assert.False(t, ok)
}

func TestCenter_FireDeliversWithPresentationOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	f.center.SetPresentationHandler(func(context.Context, *entity.PendingReminder) constant.PresentationOptions {
		return constant.PresentBanner | constant.PresentSound | constant.PresentList
	})
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.fireNow(t, "a")

	calls := f.deliverer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].ID)
	assert.True(t, calls[0].Sound)

	delivered, err := f.center.DeliveredReminders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.True(t, delivered[0].Banner)
	assert.True(t, delivered[0].Sound)
	assert.Equal(t, "body of a", delivered[0].Body)

	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Empty(t, f.center.jobs)
}

func TestCenter_FireWithoutPresentationHandlerListsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.fireNow(t, "a")

	assert.Empty(t, f.deliverer.Calls())
	delivered, err := f.center.DeliveredReminders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.False(t, delivered[0].Banner)
}

func TestCenter_FireNotDeliveredUnlessAuthorized(t *testing.T) {
	for _, status := range []constant.AuthorizationStatus{constant.AuthorizationUndetermined, constant.AuthorizationDenied} {
		t.Run(status.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			if status != constant.AuthorizationUndetermined {
				f.authorize(t, status)
			}
			require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

			f.fireNow(t, "a")

			assert.Empty(t, f.deliverer.Calls())
			delivered, err := f.center.DeliveredReminders(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, delivered)
			pending, err := f.center.PendingReminders(ctx)
			require.NoError(t, err)
			assert.Empty(t, pending)
		})
	}
}

func TestCenter_FireSkipsStartedAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	r := f.reminder("a", time.Hour)
	r.AppointmentAt = r.FireAt
	require.NoError(t, f.center.Add(ctx, r))

	f.fireNow(t, "a")

	assert.Empty(t, f.deliverer.Calls())
}

func TestCenter_DeliveryFailureStillListed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	f.deliverer.err = errors.New("push failed")
	f.center.SetPresentationHandler(func(context.Context, *entity.PendingReminder) constant.PresentationOptions {
		return constant.PresentBanner | constant.PresentList
	})
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.fireNow(t, "a")

	delivered, err := f.center.DeliveredReminders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.False(t, delivered[0].Banner)
}

func TestCenter_StaleRegistrationIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.center.mu.Lock()
	stale := f.center.jobs["a"]
	f.center.mu.Unlock()
	require.NoError(t, f.center.Add(ctx, f.reminder("a", 3*time.Hour)))

	f.now = stale.fireAt
	f.center.fire("a", stale)

	assert.Empty(t, f.deliverer.Calls())
	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCenter_FireInWrongYearSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.authorize(t, constant.AuthorizationAuthorized)
	require.NoError(t, f.center.Add(ctx, f.reminder("a", time.Hour)))

	f.center.mu.Lock()
	reg := f.center.jobs["a"]
	f.center.mu.Unlock()
	f.now = reg.fireAt.AddDate(1, 0, 0)
	f.center.fire("a", reg)

	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCenter_Restore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	future := f.reminder("future", 2*time.Hour)
	overdue := f.reminder("overdue", -time.Hour)
	stale := f.reminder("stale", -48*time.Hour)
	for _, r := range []*entity.PendingReminder{future, overdue, stale} {
		require.NoError(t, f.center.pending.Save(ctx, r))
	}

	require.NoError(t, f.center.Restore(ctx))

	pending, err := f.center.PendingReminders(ctx)
	require.NoError(t, err)
	ids := make(map[string]*entity.PendingReminder)
	for _, r := range pending {
		ids[r.NotificationID] = r
	}
	assert.Len(t, ids, 2)
	assert.NotContains(t, ids, "stale")
	require.Contains(t, ids, "overdue")
	assert.True(t, ids["overdue"].FireAt.Equal(f.now.Add(restoreDelay)))
	assert.Len(t, f.center.jobs, 2)
}

func TestCenter_RequestAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	status, err := f.center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, constant.AuthorizationUndetermined, status)

	granted, err := f.center.RequestAuthorization(ctx, constant.AuthorizeAlert|constant.AuthorizeSound)
	require.NoError(t, err)
	assert.True(t, granted)

	// Decision is persisted; the user is not asked again.
	granted, err = f.center.RequestAuthorization(ctx, constant.AuthorizeAlert)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, 1, f.prompter.calls)

	status, err = f.center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, constant.AuthorizationAuthorized, status)
}

func TestCenter_RequestAuthorizationErrorNotPersisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.prompter.err = errors.New("LINE unavailable")

	_, err := f.center.RequestAuthorization(ctx, constant.AuthorizeAlert)
	require.Error(t, err)

	status, err := f.center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, constant.AuthorizationUndetermined, status)
}

func TestCenter_RequestAuthorizationDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.prompter.granted = false

	granted, err := f.center.RequestAuthorization(ctx, constant.AuthorizeAlert)
	require.NoError(t, err)
	assert.False(t, granted)

	status, err := f.center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, constant.AuthorizationDenied, status)
}

func TestStaticPrompter(t *testing.T) {
	granted, err := StaticPrompter{Granted: true}.Prompt(context.Background(), constant.AuthorizeAlert)
	require.NoError(t, err)
	assert.True(t, granted)
}
