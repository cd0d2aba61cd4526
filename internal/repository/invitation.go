package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// Invitation defines read access to invitations outside a transaction
type Invitation interface {
	GetInvitationByDuel(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error)
	ListInvitationsForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error)
}

// InvitationTx is the invitation slice of a duel transaction
type InvitationTx interface {
	InsertInvitation(ctx context.Context, inv *domain.Invitation) error
	GetInvitationByDuelForUpdate(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error)
	UpdateInvitation(ctx context.Context, inv *domain.Invitation) error
}
