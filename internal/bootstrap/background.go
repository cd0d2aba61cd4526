package bootstrap

import (
	"log/slog"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/scheduler"
	"github.com/osse101/QuizDuel_Go/internal/worker"
)

// BackgroundJobs are the pieces that settle lapsed duels without a request.
// The scheduler and the deadline worker share one sweep job, so their runs never overlap.
type BackgroundJobs struct {
	Pool           *worker.Pool
	Scheduler      *scheduler.Scheduler
	DeadlineWorker *worker.DeadlineWorker
	Sweep          *worker.SweepJob

	// EventLogCleanup prunes the duel event history when set before Start
	EventLogCleanup worker.Job

	interval        time.Duration
	cleanupInterval time.Duration
}

// InitializeBackgroundJobs builds the worker pool, the periodic expiry sweep
// and the deadline worker. The deadline worker is subscribed later by
// RegisterEventHandlers.
func InitializeBackgroundJobs(cfg *config.Config, sweeper worker.ExpirySweeper) *BackgroundJobs {
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*4)
	sweep := worker.NewSweepJob(sweeper)

	return &BackgroundJobs{
		Pool:           pool,
		Scheduler:      scheduler.New(pool),
		DeadlineWorker: worker.NewDeadlineWorker(pool, sweep),
		Sweep:          sweep,

		interval:        cfg.SweepInterval,
		cleanupInterval: cfg.EventLogCleanupInterval,
	}
}

// Start launches the workers and schedules the sweep, running one immediately
// to settle anything that lapsed while the service was down.
func (b *BackgroundJobs) Start() {
	b.Pool.Start()
	b.Scheduler.ScheduleNow(SweepJobName, b.interval, b.Sweep)
	if b.EventLogCleanup != nil && b.cleanupInterval > 0 {
		b.Scheduler.Schedule(EventLogCleanupJobName, b.cleanupInterval, b.EventLogCleanup)
	}
	slog.Info(LogMsgBackgroundJobsReady, "sweep_interval", b.interval)
}
