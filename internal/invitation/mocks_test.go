package invitation

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// MockInvitationTx
type MockInvitationTx struct {
	mock.Mock
}

func (m *MockInvitationTx) InsertInvitation(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvitationTx) GetInvitationByDuelForUpdate(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	args := m.Called(ctx, duelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationTx) UpdateInvitation(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetInvitationByDuel(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	args := m.Called(ctx, duelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockRepository) ListInvitationsForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error) {
	args := m.Called(ctx, userID, direction, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvitationView), args.Error(1)
}
