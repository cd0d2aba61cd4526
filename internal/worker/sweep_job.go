package worker

import (
	"context"
	"sync/atomic"

	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// ExpirySweeper settles duels whose windows have lapsed
type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// SweepJob runs one expiry sweep. Overlapping runs are skipped, so the
// scheduler and the deadline worker can both request sweeps freely.
type SweepJob struct {
	sweeper ExpirySweeper
	running atomic.Bool
}

// NewSweepJob creates a sweep job for sweeper
func NewSweepJob(sweeper ExpirySweeper) *SweepJob {
	return &SweepJob{sweeper: sweeper}
}

// Process implements Job
func (j *SweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if !j.running.CompareAndSwap(false, true) {
		log.Debug(LogMsgSweepSkipped)
		return nil
	}
	defer j.running.Store(false)

	settled, err := j.sweeper.SweepExpired(ctx)
	if settled > 0 || err != nil {
		log.Info(LogMsgSweepFinished, "settled", settled, "error", err)
	}
	return err
}
