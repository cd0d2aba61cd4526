// Package eventlog keeps an append-only history of duel events.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// Service handles event logging
type Service interface {
	// Subscribe registers the logger for every duel event type
	Subscribe(bus event.Bus) error

	// History returns the logged events of one duel, oldest first
	History(ctx context.Context, duelID uuid.UUID, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, t := range event.DuelEventTypes {
		bus.Subscribe(t, s.handleEvent)
	}
	return nil
}

// duelRef picks the duel id out of any duel payload
type duelRef struct {
	DuelID string `json:"duel_id"`
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarshalPayload, err)
	}

	var ref duelRef
	if err := json.Unmarshal(payload, &ref); err != nil {
		log.Debug(LogMsgPayloadWithoutDuel, LogFieldType, evt.Type)
		return nil
	}
	duelID, err := uuid.Parse(ref.DuelID)
	if err != nil {
		log.Debug(LogMsgPayloadWithoutDuel, LogFieldType, evt.Type)
		return nil
	}

	entry := Entry{
		EventType:  string(evt.Type),
		DuelID:     duelID,
		Payload:    payload,
		Recipients: evt.Recipients(),
	}
	// A failed write is not returned: the bus would retry the publish
	// and deliver the event to every other subscriber again.
	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type, LogFieldDuelID, duelID)
		return nil
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldDuelID, duelID)
	return nil
}

func (s *service) History(ctx context.Context, duelID uuid.UUID, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.ListByDuel(ctx, duelID, limit)
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
