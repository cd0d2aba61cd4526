package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// DeadlineWorker arms a timer at each open duel's window boundary and asks
// the pool for a sweep when it fires. The periodic sweep still covers duels
// created before this process started.
type DeadlineWorker struct {
	timers *timerSet
	pool   *Pool
	sweep  Job
	now    func() time.Time
}

// NewDeadlineWorker creates a DeadlineWorker feeding sweep into pool
func NewDeadlineWorker(pool *Pool, sweep Job) *DeadlineWorker {
	return &DeadlineWorker{timers: newTimerSet(), pool: pool, sweep: sweep, now: time.Now}
}

// Subscribe registers the worker for the events that open and close duel windows
func (w *DeadlineWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.InvitationCreated, w.handleInvitationCreated)
	bus.Subscribe(event.DuelActivated, w.handleDuelActivated)
	bus.Subscribe(event.DuelCompleted, w.handleDuelClosed)
	bus.Subscribe(event.DuelCancelled, w.handleDuelClosed)
}

func (w *DeadlineWorker) handleInvitationCreated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.InvitationPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDeadlinePayloadBad, "type", evt.Type, "error", err)
		return nil
	}
	w.arm(ctx, payload.DuelID, payload.ExpiresAt)
	return nil
}

func (w *DeadlineWorker) handleDuelActivated(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.DuelActivatedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDeadlinePayloadBad, "type", evt.Type, "error", err)
		return nil
	}
	w.arm(ctx, payload.DuelID, payload.ExpiresAt)
	return nil
}

func (w *DeadlineWorker) handleDuelClosed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.DuelResultPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDeadlinePayloadBad, "type", evt.Type, "error", err)
		return nil
	}
	id, err := uuid.Parse(payload.DuelID)
	if err != nil {
		return nil
	}
	if w.timers.disarm(id) {
		logger.FromContext(ctx).Debug(LogMsgDeadlineCleared, "duel_id", id)
	}
	return nil
}

func (w *DeadlineWorker) arm(ctx context.Context, duelID string, expiresAtUnix int64) {
	id, err := uuid.Parse(duelID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgDeadlinePayloadBad, "duel_id", duelID, "error", err)
		return
	}
	deadline := time.Unix(expiresAtUnix, 0)
	wait := deadline.Sub(w.now()) + DeadlineGrace
	if wait < 0 {
		wait = 0
	}

	armed := w.timers.arm(id, wait, func() {
		logger.Info(LogMsgDeadlineReached, "duel_id", id)
		w.pool.TryEnqueue(w.sweep)
	})
	if armed {
		logger.FromContext(ctx).Debug(LogMsgDeadlineScheduled, "duel_id", id, "deadline", deadline)
	}
}

// Pending reports how many duel deadlines are armed
func (w *DeadlineWorker) Pending() int {
	return w.timers.len()
}

// Shutdown cancels every armed deadline and waits for a firing one to finish
func (w *DeadlineWorker) Shutdown(ctx context.Context) error {
	cancelled, err := w.timers.close(ctx)
	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn(LogMsgDeadlineShutdownTimeout, "cancelled", cancelled, "error", err)
		return err
	}
	log.Info(LogMsgDeadlineShutdown, "cancelled", cancelled)
	return nil
}
