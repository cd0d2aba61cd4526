// Package invitation manages the respondent side of a duel: creating the
// invitation alongside the duel and applying accept, decline and lapse.
// It never touches duel state; callers turn the returned Outcome into a duel transition.
package invitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/expiry"
	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/repository"
)

// Outcome is the signal handed back to the orchestrator
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeAccepted means the invitation moved to accepted
	OutcomeAccepted
	// OutcomeDeclined means the invitation moved to declined
	OutcomeDeclined
	// OutcomeAlreadyDeclined means a repeated decline found it declined already
	OutcomeAlreadyDeclined
	// OutcomeExpired means the window had lapsed and the invitation was auto-declined
	OutcomeExpired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDeclined:
		return "declined"
	case OutcomeAlreadyDeclined:
		return "already_declined"
	case OutcomeExpired:
		return "expired"
	default:
		return "none"
	}
}

// Service defines the invitation subsystem
type Service interface {
	Create(ctx context.Context, tx repository.InvitationTx, duelID, respondentID uuid.UUID, now time.Time) (*domain.Invitation, error)
	Accept(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, duelCreatedAt, now time.Time) (*domain.Invitation, Outcome, error)
	Decline(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, now time.Time) (*domain.Invitation, Outcome, error)
	Expire(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, now time.Time) (*domain.Invitation, Outcome, error)
	Get(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error)
	ListForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error)
	ExpiresAt(duelCreatedAt time.Time) time.Time
}

type service struct {
	repo  repository.Invitation
	clock expiry.Clock
}

// NewService creates a new invitation service
func NewService(repo repository.Invitation, clock expiry.Clock) Service {
	return &service{
		repo:  repo,
		clock: clock,
	}
}

// Create inserts a pending invitation within the caller's transaction
func (s *service) Create(ctx context.Context, tx repository.InvitationTx, duelID, respondentID uuid.UUID, now time.Time) (*domain.Invitation, error) {
	inv := &domain.Invitation{
		ID:        uuid.New(),
		DuelID:    duelID,
		UserID:    respondentID,
		Status:    domain.InvitationPending,
		CreatedAt: now,
	}
	if err := tx.InsertInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInsertInvitation, err)
	}
	logger.FromContext(ctx).Debug(LogMsgInvitationCreated, "duel_id", duelID, "respondent_id", respondentID)
	return inv, nil
}

func (s *service) load(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID) (*domain.Invitation, error) {
	inv, err := tx.GetInvitationByDuelForUpdate(ctx, duelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invitation for duel %s", domain.ErrNotFound, duelID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextLoadInvitation, err)
	}
	return inv, nil
}

// Accept moves a pending invitation to accepted.
// A lapsed window auto-declines the invitation and returns ErrExpired with OutcomeExpired.
func (s *service) Accept(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, duelCreatedAt, now time.Time) (*domain.Invitation, Outcome, error) {
	inv, err := s.load(ctx, tx, duelID)
	if err != nil {
		return nil, OutcomeNone, err
	}

	if s.clock.IsInvitationExpired(duelCreatedAt, now) {
		if inv.Status == domain.InvitationPending {
			if err := s.resolve(ctx, tx, inv, domain.InvitationDeclined, now); err != nil {
				return nil, OutcomeNone, err
			}
		}
		return inv, OutcomeExpired, domain.ErrExpired
	}

	if inv.Status != domain.InvitationPending {
		return inv, OutcomeNone, fmt.Errorf("%w: invitation is %s", domain.ErrAlreadyResolved, inv.Status)
	}

	if err := s.resolve(ctx, tx, inv, domain.InvitationAccepted, now); err != nil {
		return nil, OutcomeNone, err
	}
	logger.FromContext(ctx).Info(LogMsgInvitationAccepted, "duel_id", duelID)
	return inv, OutcomeAccepted, nil
}

// Decline moves the invitation to declined. Declining twice is a no-op.
// An accepted invitation may still be declined until the duel is activated.
func (s *service) Decline(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, now time.Time) (*domain.Invitation, Outcome, error) {
	inv, err := s.load(ctx, tx, duelID)
	if err != nil {
		return nil, OutcomeNone, err
	}
	if inv.Status == domain.InvitationDeclined {
		return inv, OutcomeAlreadyDeclined, nil
	}
	if err := s.resolve(ctx, tx, inv, domain.InvitationDeclined, now); err != nil {
		return nil, OutcomeNone, err
	}
	logger.FromContext(ctx).Info(LogMsgInvitationDeclined, "duel_id", duelID)
	return inv, OutcomeDeclined, nil
}

// Expire auto-declines an invitation whose window lapsed
func (s *service) Expire(ctx context.Context, tx repository.InvitationTx, duelID uuid.UUID, now time.Time) (*domain.Invitation, Outcome, error) {
	inv, err := s.load(ctx, tx, duelID)
	if err != nil {
		return nil, OutcomeNone, err
	}
	if inv.Status != domain.InvitationDeclined {
		if err := s.resolve(ctx, tx, inv, domain.InvitationDeclined, now); err != nil {
			return nil, OutcomeNone, err
		}
	}
	return inv, OutcomeExpired, nil
}

func (s *service) resolve(ctx context.Context, tx repository.InvitationTx, inv *domain.Invitation, status domain.InvitationStatus, now time.Time) error {
	inv.Status = status
	t := now
	inv.RespondedAt = &t
	if err := tx.UpdateInvitation(ctx, inv); err != nil {
		return fmt.Errorf("%s: %w", ErrContextUpdateInvitation, err)
	}
	return nil
}

// Get reads the invitation attached to a duel outside any transaction
func (s *service) Get(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	inv, err := s.repo.GetInvitationByDuel(ctx, duelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invitation for duel %s", domain.ErrNotFound, duelID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextLoadInvitation, err)
	}
	return inv, nil
}

// ListForUser returns sent or received invitations with their deadlines
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error) {
	if direction != domain.DirectionSent && direction != domain.DirectionReceived {
		return nil, fmt.Errorf("%w: direction %q", domain.ErrInvalidInput, direction)
	}
	views, err := s.repo.ListInvitationsForUser(ctx, userID, direction, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListInvitations, err)
	}
	return views, nil
}

// ExpiresAt is the instant an invitation for a duel created at duelCreatedAt lapses
func (s *service) ExpiresAt(duelCreatedAt time.Time) time.Time {
	return s.clock.InvitationExpiresAt(duelCreatedAt)
}
