package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/QuizDuel_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every duel event to its participants' streams
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.DuelEventTypes))
	for _, t := range event.DuelEventTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	recipients := evt.Recipients()
	s.hub.Broadcast(string(evt.Type), evt.Payload, recipients...)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"recipients", recipients)
	return nil
}
