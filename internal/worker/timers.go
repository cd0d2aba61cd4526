package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// timerSet keeps at most one pending timer per duel
type timerSet struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	closed  bool
	running sync.WaitGroup
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[uuid.UUID]*time.Timer)}
}

// arm runs fn after d, replacing any timer already set for id.
// It reports false once the set is closed.
func (s *timerSet) arm(id uuid.UUID, d time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if old, ok := s.timers[id]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		// A replaced timer that fired before Stop must not run
		if s.closed || s.timers[id] != t {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.running.Add(1)
		s.mu.Unlock()

		defer s.running.Done()
		fn()
	})
	s.timers[id] = t
	return true
}

// disarm cancels the timer for id and reports whether one was pending
func (s *timerSet) disarm(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if ok {
		t.Stop()
		delete(s.timers, id)
	}
	return ok
}

func (s *timerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// close cancels every pending timer and waits for callbacks already running
func (s *timerSet) close(ctx context.Context) (cancelled int, err error) {
	s.mu.Lock()
	s.closed = true
	for id, t := range s.timers {
		if t.Stop() {
			cancelled++
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return cancelled, nil
	case <-ctx.Done():
		return cancelled, ctx.Err()
	}
}
