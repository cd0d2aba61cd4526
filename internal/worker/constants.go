package worker

import "time"

const (
	DefaultJobTimeout = 30 * time.Second

	// DeadlineGrace delays a deadline sweep past the boundary instant
	DeadlineGrace = time.Second
)

// Pool
const (
	LogMsgWorkerJobFailed = "Background job failed"
	LogMsgJobQueueFull    = "Job queue full, job dropped"
)

// Sweep job
const (
	LogMsgSweepSkipped  = "Expiry sweep already running, skipping"
	LogMsgSweepFinished = "Expiry sweep finished"
)

// Deadline worker
const (
	LogMsgDeadlineScheduled       = "Duel deadline armed"
	LogMsgDeadlineReached         = "Duel deadline reached, requesting sweep"
	LogMsgDeadlineCleared         = "Duel deadline cleared"
	LogMsgDeadlinePayloadBad      = "Deadline worker could not decode event payload"
	LogMsgDeadlineShutdown        = "Deadline worker stopped"
	LogMsgDeadlineShutdownTimeout = "Deadline worker stop timed out"
)
