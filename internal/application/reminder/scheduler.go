package reminder

import (
	"context"
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
	"strings"
	"time"
)

const (
	// LeadTime is how long before the appointment the reminder fires.
	LeadTime = 24 * time.Hour
	// MinimumDelay is used when the lead time has already passed.
	MinimumDelay = 5 * time.Second
	// Title is the title of every reminder.
	Title = "Appointment Reminder"
	// FallbackPatientName is shown when the appointment has no patient name.
	FallbackPatientName = "Patient"
)

// FireTime returns appointmentAt - LeadTime, or now + MinimumDelay when that
// is at or before now.
func FireTime(appointmentAt, now time.Time) time.Time {
	target := appointmentAt.Add(-LeadTime)
	if !target.After(now) {
		return now.Add(MinimumDelay)
	}
	return target
}

// Snapshot is the appointment state captured into a reminder.
type Snapshot struct {
	NotificationID string
	AppointmentAt  time.Time
	Reason         string
	PatientName    string
	Status         string
}

// SnapshotOf captures the fields of appt a reminder depends on.
func SnapshotOf(appt *entity.Appointment) Snapshot {
	return Snapshot{
		NotificationID: appt.NotificationID,
		AppointmentAt:  appt.Date,
		Reason:         appt.Reason,
		PatientName:    appt.PatientName(),
		Status:         appt.Status,
	}
}

// Scheduler computes fire times and registers reminders with the sink.
type Scheduler struct {
	sink Sink
	log  logger.Logger
	now  func() time.Time
	loc  *time.Location
}

// NewScheduler creates a Scheduler. Times in the body are rendered in loc.
func NewScheduler(sink Sink, log logger.Logger, now func() time.Time, loc *time.Location) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{sink: sink, log: log, now: now, loc: loc}
}

// Build renders the pending reminder for snap as of now.
func (s *Scheduler) Build(snap Snapshot, now time.Time) *entity.PendingReminder {
	fireAt := FireTime(snap.AppointmentAt, now)
	name := strings.TrimSpace(snap.PatientName)
	if name == "" {
		name = FallbackPatientName
	}
	at := snap.AppointmentAt.In(s.loc)
	body := fmt.Sprintf("%s with %s at %s (%s).",
		strings.TrimSpace(snap.Reason), name, at.Format(time.Kitchen), dayPhrase(fireAt.In(s.loc), at))

	return &entity.PendingReminder{
		NotificationID: snap.NotificationID,
		Title:          Title,
		Body:           body,
		FireAt:         fireAt,
		Repeats:        false,
		AppointmentAt:  snap.AppointmentAt,
		CreatedAt:      now,
	}
}

// Schedule registers a reminder for snap. Failures are logged only.
func (s *Scheduler) Schedule(ctx context.Context, snap Snapshot) {
	if snap.NotificationID == "" {
		s.log.Warn("Skipping reminder for appointment without notification ID")
		return
	}
	reminder := s.Build(snap, s.now())
	if err := s.sink.Add(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to register reminder %s", snap.NotificationID), err)
		return
	}
	s.log.Info(fmt.Sprintf("Scheduled reminder %s at %v for appointment at %v", snap.NotificationID, reminder.FireAt, snap.AppointmentAt))
}

// dayPhrase describes the appointment day as seen when the reminder fires.
func dayPhrase(fireAt, appointmentAt time.Time) string {
	fy, fm, fd := fireAt.Date()
	ay, am, ad := appointmentAt.Date()
	days := int(time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return appointmentAt.Format("Mon Jan 2")
	}
}
