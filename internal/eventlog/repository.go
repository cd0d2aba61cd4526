package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one persisted duel event
type Entry struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	DuelID     uuid.UUID       `json:"duel_id"`
	Payload    json.RawMessage `json:"payload"`
	Recipients []string        `json:"recipients,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Repository defines the storage for the duel event log
type Repository interface {
	// LogEvent appends an entry. ID and CreatedAt are assigned by the store.
	LogEvent(ctx context.Context, entry Entry) error

	// ListByDuel returns a duel's entries oldest first
	ListByDuel(ctx context.Context, duelID uuid.UUID, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries created before the cutoff
	CleanupOldEvents(ctx context.Context, before time.Time) (int64, error)
}
