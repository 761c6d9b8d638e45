package scheduler

import (
	"drnote/internal/pkg/logger"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron jobs.
type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
	log  logger.Logger
	mu   sync.Mutex // To protect access to job management
}

// NewScheduler creates and starts a cron scheduler with seconds precision
// evaluating specs in loc. A nil loc means time.Local.
func NewScheduler(loc *time.Location, log logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	c.Start()
	log.Info(fmt.Sprintf("Cron scheduler started (location %s).", loc))
	return &Scheduler{
		cron: c,
		loc:  loc,
		log:  log,
	}
}

// Location returns the time zone cron specs are evaluated in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// AddJob adds a new job to the scheduler.
// spec follows the cron format with seconds (e.g., "0 30 * * * *").
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("Failed to add cron job", err)
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Debug(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Debug(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Stop stops the cron scheduler and waits for running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	ctx := s.cron.Stop()
	s.mu.Unlock()

	<-ctx.Done()
	s.log.Info("Cron scheduler stopped.")
}

// NextRun returns the next activation of a job. ok is false when no such
// job is registered.
func (s *Scheduler) NextRun(id cron.EntryID) (next time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.cron.Entry(id)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Next, true
}
