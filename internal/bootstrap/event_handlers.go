package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/eventlog"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
	"github.com/osse101/QuizDuel_Go/internal/sse"
	"github.com/osse101/QuizDuel_Go/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus       event.Bus
	Hub            *sse.Hub
	DeadlineWorker *worker.DeadlineWorker
	EventLog       eventlog.Service
}

// RegisterEventHandlers sets up all event handlers and subscribers:
// metrics collector, SSE fan-out, duel deadline timers and the event history.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	}

	if deps.DeadlineWorker != nil {
		deps.DeadlineWorker.Subscribe(deps.EventBus)
		slog.Info(LogMsgDeadlineWorkerSubscribed)
	}

	if deps.EventLog != nil {
		if err := deps.EventLog.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLog, err)
		}
		slog.Info(LogMsgEventLogSubscribed)
	}

	return nil
}
