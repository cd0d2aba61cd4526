package duel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// BucketFor places a duel in the listing bucket seen by userID
func BucketFor(d *domain.Duel, userID uuid.UUID) domain.DuelBucket {
	switch d.Status {
	case domain.DuelStatusPending:
		return domain.BucketNotStarted
	case domain.DuelStatusActive:
		if d.ProgressOf(d.ParticipantOf(userID)) < d.TotalQuizzes() {
			return domain.BucketYourTurn
		}
		return domain.BucketWaitingOnOpponent
	default:
		return domain.BucketCompleted
	}
}

// ValidBucket reports whether b names a listing bucket
func ValidBucket(b domain.DuelBucket) bool {
	switch b {
	case domain.BucketYourTurn, domain.BucketWaitingOnOpponent, domain.BucketNotStarted, domain.BucketCompleted:
		return true
	}
	return false
}

func (s *service) buildView(d *domain.Duel, userID uuid.UUID, now time.Time) *domain.DuelView {
	view := &domain.DuelView{
		Duel:         d,
		TotalQuizzes: d.TotalQuizzes(),
		Role:         d.ParticipantOf(userID),
		Bucket:       BucketFor(d, userID),
	}

	if deadline := s.clock.ExpiresAt(d); deadline != nil {
		view.ExpiresAt = deadline
		if remaining := deadline.Sub(now); remaining > 0 {
			view.RemainingSeconds = int64(remaining / time.Second)
		}
	}

	if d.Status.IsTerminal() {
		view.Outcome = &domain.DuelOutcome{
			Status:   d.Status,
			Reason:   d.OutcomeReason,
			WinnerID: d.WinnerID,
			Draw:     d.Status == domain.DuelStatusCompleted && d.WinnerID == nil,
		}
	}
	return view
}

// loadSlots reads slots for a view; a failure degrades the view instead of failing the call
func (s *service) loadSlots(ctx context.Context, duelID uuid.UUID) []domain.QuizSlot {
	slots, err := s.repo.GetSlots(ctx, duelID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSlotsUnavailable, "duel_id", duelID, "error", err)
		return nil
	}
	return slots
}

func (s *service) loadDuel(ctx context.Context, duelID uuid.UUID) (*domain.Duel, error) {
	d, err := s.repo.GetDuel(ctx, duelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuelNotFound, duelID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextLoadDuel, err)
	}
	return d, nil
}

// GetDuelView returns the caller's view of one duel, settling a lapsed window first
func (s *service) GetDuelView(ctx context.Context, userID, duelID uuid.UUID) (*domain.DuelView, error) {
	d, err := s.loadDuel(ctx, duelID)
	if err != nil {
		return nil, err
	}
	if d.ParticipantOf(userID) == domain.ParticipantNone {
		return nil, domain.ErrNotDuelMember
	}

	now := s.now()
	d, err = s.refresh(ctx, d, now)
	if err != nil {
		return nil, err
	}

	view := s.buildView(d, userID, now)
	if d.StartedAt != nil || d.CreatorProgress > 0 || d.OpponentProgress > 0 {
		view.Slots = s.loadSlots(ctx, d.ID)
	}
	if inv, err := s.invitations.Get(ctx, d.ID); err == nil {
		view.Invitation = inv
	} else {
		logger.FromContext(ctx).Debug(LogMsgInvitationUnavailable, "duel_id", d.ID, "error", err)
	}
	return view, nil
}

// ListDuels returns the caller's duels, optionally restricted to one bucket.
// Actionable duels come first: your turn, waiting, not started, completed; newest first within a bucket.
func (s *service) ListDuels(ctx context.Context, userID uuid.UUID, bucket domain.DuelBucket) ([]domain.DuelView, error) {
	if bucket != "" && !ValidBucket(bucket) {
		return nil, fmt.Errorf("%w: bucket %q", domain.ErrInvalidInput, bucket)
	}

	duels, err := s.repo.ListDuelsForUser(ctx, userID, s.cfg.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListDuels, err)
	}

	now := s.now()
	views := make([]domain.DuelView, 0, len(duels))
	for i := range duels {
		d, err := s.refresh(ctx, &duels[i], now)
		if err != nil {
			return nil, err
		}
		view := s.buildView(d, userID, now)
		if bucket != "" && view.Bucket != bucket {
			continue
		}
		views = append(views, *view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := bucketRank[views[i].Bucket], bucketRank[views[j].Bucket]
		if ri != rj {
			return ri < rj
		}
		return views[i].Duel.CreatedAt.After(views[j].Duel.CreatedAt)
	})
	return views, nil
}

var bucketRank = map[domain.DuelBucket]int{
	domain.BucketYourTurn:          0,
	domain.BucketWaitingOnOpponent: 1,
	domain.BucketNotStarted:        2,
	domain.BucketCompleted:         3,
}

// ListInvitations returns sent or received invitations.
// Lapsed pending invitations are settled before the listing is returned.
func (s *service) ListInvitations(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection) ([]domain.InvitationView, error) {
	views, err := s.invitations.ListForUser(ctx, userID, direction, s.cfg.ListLimit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	settled := false
	for _, v := range views {
		if v.DuelStatus != domain.DuelStatusPending || now.Before(v.ExpiresAt) {
			continue
		}
		if _, _, err := s.settle(ctx, v.Invitation.DuelID, now); err != nil {
			return nil, err
		}
		settled = true
	}
	if !settled {
		return views, nil
	}

	views, err = s.invitations.ListForUser(ctx, userID, direction, s.cfg.ListLimit)
	if err != nil {
		return nil, err
	}
	return views, nil
}
