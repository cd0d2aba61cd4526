package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Duel event types
const (
	InvitationCreated    Type = Type(domain.EventTypeInvitationCreated)
	InvitationAccepted   Type = Type(domain.EventTypeInvitationAccepted)
	DuelActivated        Type = Type(domain.EventTypeDuelActivated)
	DuelCompleted        Type = Type(domain.EventTypeDuelCompleted)
	DuelCancelled        Type = Type(domain.EventTypeDuelCancelled)
	DuelStandaloneResult Type = Type(domain.EventTypeDuelStandaloneResult)
)

// DuelEventTypes lists every event the duel orchestrator publishes
var DuelEventTypes = []Type{
	InvitationCreated,
	InvitationAccepted,
	DuelActivated,
	DuelCompleted,
	DuelCancelled,
	DuelStandaloneResult,
}

// Typed event payloads for type safety

// InvitationPayloadV1 is the typed payload for invitation.created and invitation.accepted
type InvitationPayloadV1 struct {
	DuelID       string   `json:"duel_id"`
	InvitationID string   `json:"invitation_id"`
	CreatorID    string   `json:"creator_id"`
	OpponentID   string   `json:"opponent_id"`
	Subjects     []string `json:"subjects"`
	Difficulty   string   `json:"difficulty"`
	ExpiresAt    int64    `json:"expires_at"`
	Timestamp    int64    `json:"timestamp"`
}

// DuelActivatedPayloadV1 is the typed payload for duel.activated
type DuelActivatedPayloadV1 struct {
	DuelID       string `json:"duel_id"`
	CreatorID    string `json:"creator_id"`
	OpponentID   string `json:"opponent_id"`
	TotalQuizzes int    `json:"total_quizzes"`
	ExpiresAt    int64  `json:"expires_at"`
	Timestamp    int64  `json:"timestamp"`
}

// DuelResultPayloadV1 is the typed payload for duel.completed and duel.cancelled
type DuelResultPayloadV1 struct {
	DuelID        string `json:"duel_id"`
	CreatorID     string `json:"creator_id"`
	OpponentID    string `json:"opponent_id"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
	WinnerID      string `json:"winner_id,omitempty"`
	CreatorScore  int    `json:"creator_score"`
	OpponentScore int    `json:"opponent_score"`
	Timestamp     int64  `json:"timestamp"`
}

// StandaloneResultPayloadV1 carries creator progress that outlived a cancelled invitation
type StandaloneResultPayloadV1 struct {
	DuelID    string `json:"duel_id"`
	UserID    string `json:"user_id"`
	Progress  int    `json:"progress"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
}

// Recipients returns the users a duel event should be delivered to
func (e Event) Recipients() []string {
	if ids, ok := e.GetMetadataValue(MetadataKeyRecipients).([]string); ok {
		return ids
	}
	return nil
}

func recipients(ids ...uuid.UUID) map[string]interface{} {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return map[string]interface{}{MetadataKeyRecipients: out}
}

func subjectIDs(d *domain.Duel) []string {
	ids := make([]string, 0, len(d.Subjects))
	for _, s := range d.Subjects {
		ids = append(ids, s.SubjectID)
	}
	return ids
}

// Type-safe event constructors

// NewInvitationCreatedEvent notifies the respondent of a new duel invitation
func NewInvitationCreatedEvent(d *domain.Duel, inv *domain.Invitation, expiresAt time.Time) Event {
	return newInvitationEvent(InvitationCreated, d, inv, expiresAt, d.OpponentID)
}

// NewInvitationAcceptedEvent notifies the creator that the duel can be activated
func NewInvitationAcceptedEvent(d *domain.Duel, inv *domain.Invitation, expiresAt time.Time) Event {
	return newInvitationEvent(InvitationAccepted, d, inv, expiresAt, d.CreatorID)
}

func newInvitationEvent(t Type, d *domain.Duel, inv *domain.Invitation, expiresAt time.Time, to uuid.UUID) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: InvitationPayloadV1{
			DuelID:       d.ID.String(),
			InvitationID: inv.ID.String(),
			CreatorID:    d.CreatorID.String(),
			OpponentID:   d.OpponentID.String(),
			Subjects:     subjectIDs(d),
			Difficulty:   string(d.Difficulty),
			ExpiresAt:    expiresAt.Unix(),
			Timestamp:    time.Now().Unix(),
		},
		Metadata: recipients(to),
	}
}

// NewDuelActivatedEvent notifies both participants that play can begin
func NewDuelActivatedEvent(d *domain.Duel, expiresAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DuelActivated,
		Payload: DuelActivatedPayloadV1{
			DuelID:       d.ID.String(),
			CreatorID:    d.CreatorID.String(),
			OpponentID:   d.OpponentID.String(),
			TotalQuizzes: d.TotalQuizzes(),
			ExpiresAt:    expiresAt.Unix(),
			Timestamp:    time.Now().Unix(),
		},
		Metadata: recipients(d.CreatorID, d.OpponentID),
	}
}

// NewDuelCompletedEvent announces the final result of a duel
func NewDuelCompletedEvent(d *domain.Duel) Event {
	return newResultEvent(DuelCompleted, d)
}

// NewDuelCancelledEvent announces a duel that ended before activation
func NewDuelCancelledEvent(d *domain.Duel) Event {
	return newResultEvent(DuelCancelled, d)
}

func newResultEvent(t Type, d *domain.Duel) Event {
	payload := DuelResultPayloadV1{
		DuelID:        d.ID.String(),
		CreatorID:     d.CreatorID.String(),
		OpponentID:    d.OpponentID.String(),
		Status:        string(d.Status),
		Reason:        string(d.OutcomeReason),
		CreatorScore:  d.CreatorScore,
		OpponentScore: d.OpponentScore,
		Timestamp:     time.Now().Unix(),
	}
	if d.WinnerID != nil {
		payload.WinnerID = d.WinnerID.String()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: recipients(d.CreatorID, d.OpponentID),
	}
}

// NewStandaloneResultEvent records creator progress from a duel that never started
func NewStandaloneResultEvent(d *domain.Duel) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DuelStandaloneResult,
		Payload: StandaloneResultPayloadV1{
			DuelID:    d.ID.String(),
			UserID:    d.CreatorID.String(),
			Progress:  d.CreatorProgress,
			Score:     d.CreatorScore,
			Timestamp: time.Now().Unix(),
		},
		Metadata: recipients(d.CreatorID),
	}
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// Payloads published in-process are already the concrete struct.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrMsgHandlersFailed+": %w", len(errs), event.Type, errors.Join(errs...))
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
