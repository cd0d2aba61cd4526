package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// Duel defines the interface for duel data access
type Duel interface {
	GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error)
	GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error)
	ListDuelsForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Duel, error)

	// FindPendingDuel returns the pending duel from creatorID to opponentID.
	// Returns domain.ErrNotFound when there is none.
	FindPendingDuel(ctx context.Context, creatorID, opponentID uuid.UUID) (*domain.Duel, error)

	// ListDueForExpiry returns non-terminal duels whose window closed before the cutoffs:
	// pending duels created at or before invitationCutoff and active duels started at or before sessionCutoff.
	ListDueForExpiry(ctx context.Context, invitationCutoff, sessionCutoff time.Time, limit int) ([]uuid.UUID, error)

	// Transaction support
	BeginDuelTx(ctx context.Context) (DuelTx, error)
}

// DuelTx extends Tx with duel-specific transactional operations.
// Reads inside the transaction lock the row until commit.
type DuelTx interface {
	Tx // Commit, Rollback
	InvitationTx

	// InsertDuel stores a new pending duel. Returns domain.ErrDuplicateInvitation
	// when a pending duel already exists for the same creator and opponent.
	InsertDuel(ctx context.Context, duel *domain.Duel) error
	GetDuelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Duel, error)

	// UpdateDuel writes duel state if the stored version still matches duel.Version,
	// then increments duel.Version. Returns domain.ErrConcurrentModification otherwise.
	UpdateDuel(ctx context.Context, duel *domain.Duel) error

	InsertSlots(ctx context.Context, slots []domain.QuizSlot) error
	GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error)
}
