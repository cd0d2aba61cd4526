package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/expiry"
	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
	"github.com/osse101/QuizDuel_Go/internal/repository"
)

// txScope is the state shared by one locked duel transaction
type txScope struct {
	tx     repository.DuelTx
	duel   *domain.Duel
	slots  []domain.QuizSlot
	events []event.Event

	// deferred is returned to the caller after a successful commit
	deferred error
}

func lockKey(duelID uuid.UUID) string {
	return LockKeyPrefix + duelID.String()
}

// withDuelTx serializes work on one duel: per-duel lock, then a row-locking transaction.
// Events collected in the scope are published only after commit.
func (s *service) withDuelTx(ctx context.Context, duelID uuid.UUID, fn func(sc *txScope) error) (*txScope, error) {
	waitStart := time.Now()
	unlock, err := s.locker.Lock(ctx, lockKey(duelID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextAcquireLock, err)
	}
	defer unlock()
	if waited := time.Since(waitStart); waited > LockContentionThreshold {
		logger.FromContext(ctx).Debug(LogMsgLockContended, "duel_id", duelID, "waited", waited)
	}

	tx, err := s.repo.BeginDuelTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	d, err := tx.GetDuelForUpdate(ctx, duelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuelNotFound, duelID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextLoadDuel, err)
	}

	sc := &txScope{tx: tx, duel: d}
	if err := fn(sc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}

	s.publish(ctx, sc.events...)
	return sc, nil
}

// applyDue applies any time-driven transition that is due for the scoped duel.
// It reports whether the duel changed.
func (s *service) applyDue(ctx context.Context, sc *txScope, now time.Time) (bool, error) {
	d := sc.duel
	verdict := s.clock.Evaluate(d, now)
	if !verdict.Due() {
		return false, nil
	}

	switch verdict.Action {
	case expiry.ActionCancelInvitation:
		if _, _, err := s.invitations.Expire(ctx, sc.tx, d.ID, now); err != nil {
			return false, err
		}
		s.cancel(sc, verdict.Reason, now)
	default:
		expiry.Apply(d, verdict, now)
		sc.events = append(sc.events, event.NewDuelCompletedEvent(d))
	}

	if err := sc.tx.UpdateDuel(ctx, d); err != nil {
		return false, s.wrapUpdateErr(err)
	}

	logger.FromContext(ctx).Info(LogMsgExpiryApplied,
		"duel_id", d.ID,
		"action", verdict.Action.String(),
		"status", d.Status,
		"reason", d.OutcomeReason)
	return true, nil
}

// settle applies a due transition to one duel under its lock
func (s *service) settle(ctx context.Context, duelID uuid.UUID, now time.Time) (*domain.Duel, bool, error) {
	applied := false
	sc, err := s.withDuelTx(ctx, duelID, func(sc *txScope) error {
		var err error
		applied, err = s.applyDue(ctx, sc, now)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return sc.duel, applied, nil
}

// refresh settles d when a transition is due and returns the current state.
// Reads never return a duel whose window has lapsed.
func (s *service) refresh(ctx context.Context, d *domain.Duel, now time.Time) (*domain.Duel, error) {
	if !s.clock.Evaluate(d, now).Due() {
		return d, nil
	}
	settled, _, err := s.settle(ctx, d.ID, now)
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// SweepExpired settles every duel whose window lapsed, in batches.
// A failure on one duel is logged and does not stop the sweep.
func (s *service) SweepExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	now := s.now()
	metrics.SweepRuns.Inc()

	invitationCutoff := now.Add(-s.clock.InvitationTTL)
	sessionCutoff := now.Add(-s.clock.SessionTTL)

	ids, err := s.repo.ListDueForExpiry(ctx, invitationCutoff, sessionCutoff, s.cfg.SweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextListDue, err)
	}

	settled := 0
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		_, applied, err := s.settle(ctx, id, now)
		if err != nil {
			log.Warn(LogMsgSweepDuelFailed, "duel_id", id, "error", err)
			errs = append(errs, err)
			continue
		}
		if applied {
			settled++
		}
	}

	metrics.SweepTransitions.Add(float64(settled))
	if settled > 0 {
		log.Info(LogMsgSweepCompleted, "candidates", len(ids), "settled", settled)
	}
	return settled, errors.Join(errs...)
}
