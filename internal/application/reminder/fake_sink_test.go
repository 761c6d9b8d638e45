package reminder

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"sync"
)

// fakeSink is an in-memory notification service. Unlike the real center it
// does not replace on ID reuse, so duplicates show up if a caller forgets
// to cancel first.
type fakeSink struct {
	mu         sync.Mutex
	pending    []*entity.PendingReminder
	calls      []string
	status     constant.AuthorizationStatus
	grant      bool
	statusErr  error
	requestErr error
	addErr     error
	removeErr  error
	requests   int
	handler    func(ctx context.Context, reminder *entity.PendingReminder) constant.PresentationOptions
}

func (s *fakeSink) Add(_ context.Context, r *entity.PendingReminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "add:"+r.NotificationID)
	if s.addErr != nil {
		return s.addErr
	}
	cp := *r
	s.pending = append(s.pending, &cp)
	return nil
}

func (s *fakeSink) RemovePending(_ context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.calls = append(s.calls, "remove:"+id)
	}
	if s.removeErr != nil {
		return s.removeErr
	}
	kept := s.pending[:0]
	for _, r := range s.pending {
		drop := false
		for _, id := range ids {
			if r.NotificationID == id {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, r)
		}
	}
	s.pending = kept
	return nil
}

func (s *fakeSink) AuthorizationStatus(context.Context) (constant.AuthorizationStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusErr
}

func (s *fakeSink) RequestAuthorization(context.Context, constant.AuthorizationOptions) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if s.requestErr != nil {
		return false, s.requestErr
	}
	if s.grant {
		s.status = constant.AuthorizationAuthorized
	} else {
		s.status = constant.AuthorizationDenied
	}
	return s.grant, nil
}

func (s *fakeSink) SetPresentationHandler(handler func(ctx context.Context, reminder *entity.PendingReminder) constant.PresentationOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

func (s *fakeSink) pendingFor(id string) []*entity.PendingReminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.PendingReminder
	for _, r := range s.pending {
		if r.NotificationID == id {
			out = append(out, r)
		}
	}
	return out
}

func (s *fakeSink) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *fakeSink) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
