package reminder

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/pkg/logger"
	"fmt"
	"sync"
	"time"
)

const defaultQueueSize = 64

type opKind int

const (
	opSchedule opKind = iota
	opReschedule
	opCancel
	opBarrier
)

func (k opKind) String() string {
	switch k {
	case opSchedule:
		return "schedule"
	case opReschedule:
		return "reschedule"
	case opCancel:
		return "cancel"
	default:
		return "barrier"
	}
}

type op struct {
	kind opKind
	snap Snapshot
	done chan struct{} // Barrier only
}

// Coordinator keeps each appointment's reminder in sync with its lifecycle.
// Calls return immediately; the work runs in call order on one goroutine.
type Coordinator struct {
	gate      *Gate
	scheduler *Scheduler
	canceller *Canceller
	presenter *Presenter
	sink      Sink
	log       logger.Logger
	now       func() time.Time

	mu      sync.RWMutex // Guards closed against sends on ops
	closed  bool
	ops     chan op
	stopped chan struct{}
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*coordinatorConfig)

type coordinatorConfig struct {
	now       func() time.Time
	loc       *time.Location
	queueSize int
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *coordinatorConfig) { c.now = now }
}

// WithLocation sets the time zone reminder bodies are rendered in.
func WithLocation(loc *time.Location) CoordinatorOption {
	return func(c *coordinatorConfig) { c.loc = loc }
}

// WithQueueSize sets how many operations may wait for the dispatcher.
func WithQueueSize(n int) CoordinatorOption {
	return func(c *coordinatorConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// NewCoordinator creates a Coordinator over sink and starts its dispatcher.
func NewCoordinator(sink Sink, log logger.Logger, opts ...CoordinatorOption) *Coordinator {
	cfg := coordinatorConfig{now: time.Now, loc: time.Local, queueSize: defaultQueueSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Coordinator{
		gate:      NewGate(sink, log),
		scheduler: NewScheduler(sink, log, cfg.now, cfg.loc),
		canceller: NewCanceller(sink, log),
		presenter: NewPresenter(log),
		sink:      sink,
		log:       log,
		now:       cfg.now,
		ops:       make(chan op, cfg.queueSize),
		stopped:   make(chan struct{}),
	}
	go c.dispatch()
	return c
}

// Initialize registers the foreground presenter and resolves authorization
// in the background. The returned channel closes once authorization is
// resolved; nothing else waits for it.
func (c *Coordinator) Initialize(ctx context.Context) <-chan struct{} {
	c.sink.SetPresentationHandler(c.presenter.WillPresent)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.gate.EnsureAuthorized(ctx)
	}()
	return done
}

// Status returns the cached authorization status.
func (c *Coordinator) Status() constant.AuthorizationStatus {
	return c.gate.Status()
}

// OnAppointmentCreated schedules the appointment's reminder.
func (c *Coordinator) OnAppointmentCreated(appt *entity.Appointment) {
	if appt == nil {
		return
	}
	c.enqueue(op{kind: opSchedule, snap: SnapshotOf(appt)})
}

// OnAppointmentEdited cancels the appointment's reminder and schedules a new
// one from the current state, whatever fields changed.
func (c *Coordinator) OnAppointmentEdited(appt *entity.Appointment) {
	if appt == nil {
		return
	}
	c.enqueue(op{kind: opReschedule, snap: SnapshotOf(appt)})
}

// OnAppointmentDeleted cancels the appointment's reminder.
func (c *Coordinator) OnAppointmentDeleted(appt *entity.Appointment) {
	if appt == nil {
		return
	}
	c.enqueue(op{kind: opCancel, snap: SnapshotOf(appt)})
}

// Publish consumes a record store lifecycle event.
func (c *Coordinator) Publish(event entity.AppointmentEvent) {
	appt := event.Appointment
	switch event.Type {
	case constant.AppointmentCreated:
		c.OnAppointmentCreated(&appt)
	case constant.AppointmentEdited:
		c.OnAppointmentEdited(&appt)
	case constant.AppointmentDeleted:
		c.OnAppointmentDeleted(&appt)
	default:
		c.log.Warn(fmt.Sprintf("Ignoring unknown appointment event type %q", event.Type))
	}
}

// Flush waits until every operation queued before the call has run.
func (c *Coordinator) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !c.enqueue(op{kind: opBarrier, done: done}) {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting operations, runs the queued ones and stops the dispatcher.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.ops)
	}
	c.mu.Unlock()
	<-c.stopped
}

func (c *Coordinator) enqueue(o op) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		c.log.Warn(fmt.Sprintf("Reminder coordinator closed, dropping %s for %s", o.kind, o.snap.NotificationID))
		return false
	}
	c.ops <- o
	return true
}

func (c *Coordinator) dispatch() {
	defer close(c.stopped)
	ctx := context.Background()
	for o := range c.ops {
		switch o.kind {
		case opSchedule:
			c.schedule(ctx, o.snap)
		case opReschedule:
			c.canceller.Cancel(ctx, o.snap.NotificationID)
			c.schedule(ctx, o.snap)
		case opCancel:
			c.canceller.Cancel(ctx, o.snap.NotificationID)
		case opBarrier:
			close(o.done)
		}
	}
}

func (c *Coordinator) schedule(ctx context.Context, snap Snapshot) {
	if c.gate.Status() == constant.AuthorizationDenied {
		c.log.Debug(fmt.Sprintf("Notifications denied, not scheduling reminder %s", snap.NotificationID))
		return
	}
	if snap.Status != "" && snap.Status != constant.AppointmentStatusScheduled {
		c.log.Debug(fmt.Sprintf("Appointment for reminder %s is %s, not scheduling", snap.NotificationID, snap.Status))
		return
	}
	if !snap.AppointmentAt.After(c.now()) {
		c.log.Debug(fmt.Sprintf("Appointment for reminder %s is in the past, not scheduling", snap.NotificationID))
		return
	}
	c.scheduler.Schedule(ctx, snap)
}
