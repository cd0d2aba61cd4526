package metrics

import (
	"context"

	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// EventMetricsCollector turns duel events into counters
type EventMetricsCollector struct{}

func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every duel event type
func (c *EventMetricsCollector) Register(bus event.Bus) error {
	for _, t := range event.DuelEventTypes {
		bus.Subscribe(t, c.HandleEvent)
	}
	return nil
}

// HandleEvent never fails; an undecodable payload only skips the outcome counter.
func (c *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.InvitationCreated:
		DuelsCreated.Inc()
	case event.DuelCompleted, event.DuelCancelled:
		p, err := event.DecodePayload[event.DuelResultPayloadV1](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
			return nil
		}
		DuelOutcomes.WithLabelValues(p.Status, p.Reason).Inc()
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
