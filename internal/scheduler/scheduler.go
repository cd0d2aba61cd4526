// Package scheduler enqueues recurring jobs onto a worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
	"github.com/osse101/QuizDuel_Go/internal/worker"
)

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickDropped  = "Scheduler tick dropped, worker queue full"
	LogMsgStopped      = "Scheduler stopped"
)

// Enqueuer is the part of the worker pool the scheduler feeds
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler enqueues each registered job once per interval.
// A tick that finds the queue full is dropped; the next tick tries again.
type Scheduler struct {
	pool   Enqueuer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	jobs []string
}

func New(pool Enqueuer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule runs job every interval, the first time one interval from now
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.start(name, interval, job, false)
}

// ScheduleNow also enqueues job immediately
func (s *Scheduler) ScheduleNow(name string, interval time.Duration, job worker.Job) {
	s.start(name, interval, job, true)
}

// Jobs lists the names of scheduled jobs in registration order
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.jobs...)
}

func (s *Scheduler) start(name string, interval time.Duration, job worker.Job, immediate bool) {
	if s.ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, name)
	s.mu.Unlock()
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval, "immediate", immediate)

	if immediate {
		s.tick(name, job)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-t.C:
				s.tick(name, job)
			}
		}
	}()
}

func (s *Scheduler) tick(name string, job worker.Job) {
	if s.pool.TryEnqueue(job) {
		metrics.SchedulerTicks.WithLabelValues(name, metrics.TickEnqueued).Inc()
		return
	}
	metrics.SchedulerTicks.WithLabelValues(name, metrics.TickDropped).Inc()
	logger.Warn(LogMsgTickDropped, "job", name)
}

// Stop halts every ticker and waits for the loops to exit. Jobs already
// queued on the pool are not affected. Safe to call more than once.
func (s *Scheduler) Stop() {
	if s.ctx.Err() != nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	logger.Info(LogMsgStopped, "jobs", len(s.Jobs()))
}
