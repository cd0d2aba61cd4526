package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuizDuel_Go/internal/eventlog"
)

// EventLogRepository stores the duel event history
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

func (r *EventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	recipients := entry.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO duel_event_log (event_type, duel_id, payload, recipients)
		VALUES ($1, $2, $3, $4)`,
		entry.EventType, entry.DuelID, []byte(entry.Payload), recipients)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

func (r *EventLogRepository) ListByDuel(ctx context.Context, duelID uuid.UUID, limit int) ([]eventlog.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_type, duel_id, payload, recipients, created_at
		FROM duel_event_log
		WHERE duel_id = $1
		ORDER BY id
		LIMIT $2`, duelID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (eventlog.Entry, error) {
		var e eventlog.Entry
		var payload []byte
		err := row.Scan(&e.ID, &e.EventType, &e.DuelID, &payload, &e.Recipients, &e.CreatedAt)
		e.Payload = payload
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	return entries, nil
}

func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM duel_event_log WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
