package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/concurrency"
	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/expiry"
	"github.com/osse101/QuizDuel_Go/internal/invitation"
	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
	"github.com/osse101/QuizDuel_Go/internal/quiz"
	"github.com/osse101/QuizDuel_Go/internal/repository"
)

// Service defines the interface for duel operations
type Service interface {
	CreateDuel(ctx context.Context, creatorID uuid.UUID, req CreateDuelRequest) (*domain.DuelView, error)
	Respond(ctx context.Context, userID, duelID uuid.UUID, accept bool) (*domain.DuelView, error)
	Activate(ctx context.Context, userID, duelID uuid.UUID) (*domain.DuelView, error)
	RecordAnswer(ctx context.Context, userID, duelID uuid.UUID, ordinal int, correct bool) (*domain.DuelView, error)
	GetDuelView(ctx context.Context, userID, duelID uuid.UUID) (*domain.DuelView, error)
	ListDuels(ctx context.Context, userID uuid.UUID, bucket domain.DuelBucket) ([]domain.DuelView, error)
	ListInvitations(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection) ([]domain.InvitationView, error)
	SweepExpired(ctx context.Context) (int, error)
}

// CreateDuelRequest carries the creator's choices for a new duel
type CreateDuelRequest struct {
	OpponentID uuid.UUID
	Subjects   []domain.SubjectAllocation
	Difficulty domain.DifficultyTier
}

// Config tunes the orchestrator
type Config struct {
	MaxQuizzesPerSubject int
	ListLimit            int
	SweepBatchSize       int
}

// RelationshipChecker answers whether two users are friends
type RelationshipChecker interface {
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// ProfileDirectory looks up a student's profile, for the grade level
type ProfileDirectory interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error)
}

// Deps are the collaborators the orchestrator calls into
type Deps struct {
	Repo        repository.Duel
	Invitations invitation.Service
	Resolver    quiz.Resolver
	Friends     RelationshipChecker
	Profiles    ProfileDirectory
	Locker      concurrency.Locker
	Bus         event.Bus
	Clock       expiry.Clock
}

type service struct {
	repo        repository.Duel
	invitations invitation.Service
	resolver    quiz.Resolver
	friends     RelationshipChecker
	profiles    ProfileDirectory
	locker      concurrency.Locker
	bus         event.Bus
	clock       expiry.Clock
	cfg         Config
	now         func() time.Time
}

// NewService creates a new duel service
func NewService(deps Deps, cfg Config) Service {
	if cfg.MaxQuizzesPerSubject <= 0 {
		cfg.MaxQuizzesPerSubject = DefaultMaxQuizzesPerSubject
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultListLimit
	}
	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = DefaultSweepBatchSize
	}
	if deps.Locker == nil {
		deps.Locker = concurrency.NewLockManager()
	}
	return &service{
		repo:        deps.Repo,
		invitations: deps.Invitations,
		resolver:    deps.Resolver,
		friends:     deps.Friends,
		profiles:    deps.Profiles,
		locker:      deps.Locker,
		bus:         deps.Bus,
		clock:       deps.Clock,
		cfg:         cfg,
		now:         time.Now,
	}
}

// expiredTransitionErr is returned by writes that found the duel's window lapsed.
// It matches both ErrInvalidTransition and ErrExpired.
func expiredTransitionErr(d *domain.Duel) error {
	return fmt.Errorf("%w: %w: duel %s is %s (%s)", domain.ErrInvalidTransition, domain.ErrExpired, d.ID, d.Status, d.OutcomeReason)
}

// CreateDuel validates the request, checks friendship and stores the duel and its invitation atomically
func (s *service) CreateDuel(ctx context.Context, creatorID uuid.UUID, req CreateDuelRequest) (*domain.DuelView, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateDuelCalled, "creator_id", creatorID, "opponent_id", req.OpponentID)

	subjects, err := s.validateCreateRequest(creatorID, req)
	if err != nil {
		return nil, err
	}

	friends, err := s.friends.AreFriends(ctx, creatorID, req.OpponentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFriendshipCheck, err)
	}
	if !friends {
		return nil, domain.ErrNotFriends
	}

	profile, err := s.profiles.GetProfile(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetProfile, err)
	}

	now := s.now()
	if err := s.clearLapsedPending(ctx, creatorID, req.OpponentID, now); err != nil {
		return nil, err
	}

	d := &domain.Duel{
		ID:         uuid.New(),
		CreatorID:  creatorID,
		OpponentID: req.OpponentID,
		Status:     domain.DuelStatusPending,
		Subjects:   subjects,
		Difficulty: req.Difficulty,
		GradeLevel: profile.GradeLevel,
		CreatedAt:  now,
	}

	tx, err := s.repo.BeginDuelTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertDuel(ctx, d); err != nil {
		if errors.Is(err, domain.ErrDuplicateInvitation) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextInsertDuel, err)
	}

	inv, err := s.invitations.Create(ctx, tx, d.ID, d.OpponentID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}

	log.Info(LogMsgDuelCreated, "duel_id", d.ID, "total_quizzes", d.TotalQuizzes(), "grade", d.GradeLevel)
	s.publish(ctx, event.NewInvitationCreatedEvent(d, inv, s.clock.InvitationExpiresAt(d.CreatedAt)))

	view := s.buildView(d, creatorID, now)
	view.Invitation = inv
	return view, nil
}

// clearLapsedPending settles the pair's pending duel when its invitation window
// has closed, so an unswept duel does not block a new invitation.
func (s *service) clearLapsedPending(ctx context.Context, creatorID, opponentID uuid.UUID, now time.Time) error {
	existing, err := s.repo.FindPendingDuel(ctx, creatorID, opponentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFindPending, err)
	}
	if !s.clock.Evaluate(existing, now).Due() {
		return fmt.Errorf("%w: duel %s", domain.ErrDuplicateInvitation, existing.ID)
	}
	_, _, err = s.settle(ctx, existing.ID, now)
	return err
}

func (s *service) validateCreateRequest(creatorID uuid.UUID, req CreateDuelRequest) ([]domain.SubjectAllocation, error) {
	if req.OpponentID == uuid.Nil || creatorID == uuid.Nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingParticipant)
	}
	if req.OpponentID == creatorID {
		return nil, domain.ErrSelfDuel
	}
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnknownDifficulty, req.Difficulty)
	}
	if len(req.Subjects) < domain.MinDuelSubjects || len(req.Subjects) > domain.MaxDuelSubjects {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgSubjectCount)
	}

	seen := make(map[string]bool, len(req.Subjects))
	subjects := make([]domain.SubjectAllocation, 0, len(req.Subjects))
	for _, alloc := range req.Subjects {
		subject := quiz.NormalizeSubject(alloc.SubjectID)
		if subject == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptySubject)
		}
		if seen[subject] {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgDuplicateSubject, subject)
		}
		if alloc.QuizCount < 1 || alloc.QuizCount > s.cfg.MaxQuizzesPerSubject {
			return nil, fmt.Errorf("%w: %s (1-%d)", domain.ErrInvalidInput, ErrMsgQuizCount, s.cfg.MaxQuizzesPerSubject)
		}
		seen[subject] = true
		subjects = append(subjects, domain.SubjectAllocation{SubjectID: subject, QuizCount: alloc.QuizCount})
	}
	return subjects, nil
}

// Respond applies the opponent's accept or decline.
// Declining an already cancelled duel is a no-op.
func (s *service) Respond(ctx context.Context, userID, duelID uuid.UUID, accept bool) (*domain.DuelView, error) {
	logger.FromContext(ctx).Info(LogMsgRespondCalled, "duel_id", duelID, "user_id", userID, "accept", accept)

	now := s.now()
	var inv *domain.Invitation
	sc, err := s.withDuelTx(ctx, duelID, func(sc *txScope) error {
		d := sc.duel
		if d.OpponentID != userID {
			if d.CreatorID == userID {
				return fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgOnlyOpponentResponds)
			}
			return domain.ErrNotDuelMember
		}

		applied, err := s.applyDue(ctx, sc, now)
		if err != nil {
			return err
		}
		if applied {
			if !accept && d.Status == domain.DuelStatusCancelled {
				return nil
			}
			sc.deferred = expiredTransitionErr(d)
			return nil
		}

		if accept {
			inv, err = s.accept(ctx, sc, now)
			return err
		}
		inv, err = s.decline(ctx, sc, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := s.buildView(sc.duel, userID, now)
	if inv != nil {
		view.Invitation = inv
	}
	return view, sc.deferred
}

func (s *service) accept(ctx context.Context, sc *txScope, now time.Time) (*domain.Invitation, error) {
	d := sc.duel
	if d.Status != domain.DuelStatusPending {
		return nil, fmt.Errorf("%w: cannot accept a %s duel", domain.ErrInvalidTransition, d.Status)
	}

	inv, outcome, err := s.invitations.Accept(ctx, sc.tx, d.ID, d.CreatedAt, now)
	if outcome == invitation.OutcomeExpired {
		// evaluator and invitation disagree only at the exact boundary; cancel the duel either way
		s.cancel(sc, domain.OutcomeExpiredInvitation, now)
		if err := sc.tx.UpdateDuel(ctx, d); err != nil {
			return nil, s.wrapUpdateErr(err)
		}
		sc.deferred = expiredTransitionErr(d)
		return inv, nil
	}
	if err != nil {
		return nil, err
	}

	sc.events = append(sc.events, event.NewInvitationAcceptedEvent(d, inv, s.clock.InvitationExpiresAt(d.CreatedAt)))
	return inv, nil
}

func (s *service) decline(ctx context.Context, sc *txScope, now time.Time) (*domain.Invitation, error) {
	d := sc.duel
	switch d.Status {
	case domain.DuelStatusCancelled:
		return nil, nil
	case domain.DuelStatusPending:
	default:
		return nil, fmt.Errorf("%w: cannot decline a %s duel", domain.ErrInvalidTransition, d.Status)
	}

	inv, outcome, err := s.invitations.Decline(ctx, sc.tx, d.ID, now)
	if err != nil {
		return nil, err
	}
	if outcome == invitation.OutcomeAlreadyDeclined {
		return inv, nil
	}

	s.cancel(sc, domain.OutcomeDeclined, now)
	if err := sc.tx.UpdateDuel(ctx, d); err != nil {
		return nil, s.wrapUpdateErr(err)
	}
	return inv, nil
}

func (s *service) cancel(sc *txScope, reason domain.OutcomeReason, now time.Time) {
	d := sc.duel
	expiry.Apply(d, expiry.Verdict{
		Action: expiry.ActionCancelInvitation,
		Status: domain.DuelStatusCancelled,
		Reason: reason,
	}, now)
	if reason == domain.OutcomeExpiredInvitation && (d.CreatorProgress > 0 || d.CreatorScore > 0) {
		sc.events = append(sc.events, event.NewStandaloneResultEvent(d))
	}
	sc.events = append(sc.events, event.NewDuelCancelledEvent(d))
}

// Activate resolves every quiz slot and starts the session window.
// Activating an active duel returns it unchanged.
func (s *service) Activate(ctx context.Context, userID, duelID uuid.UUID) (*domain.DuelView, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgActivateCalled, "duel_id", duelID, "user_id", userID)

	now := s.now()
	sc, err := s.withDuelTx(ctx, duelID, func(sc *txScope) error {
		d := sc.duel
		if d.CreatorID != userID {
			if d.OpponentID == userID {
				return fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgOnlyCreatorActivates)
			}
			return domain.ErrNotDuelMember
		}

		applied, err := s.applyDue(ctx, sc, now)
		if err != nil {
			return err
		}
		if applied {
			sc.deferred = expiredTransitionErr(d)
			return nil
		}

		switch d.Status {
		case domain.DuelStatusActive:
			return nil
		case domain.DuelStatusPending:
		default:
			return fmt.Errorf("%w: cannot activate a %s duel", domain.ErrInvalidTransition, d.Status)
		}

		inv, err := sc.tx.GetInvitationByDuelForUpdate(ctx, d.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextLoadInvitation, err)
		}
		if inv.Status != domain.InvitationAccepted {
			return fmt.Errorf("%w: %s", domain.ErrInvalidTransition, ErrMsgInvitationNotAccepted)
		}

		slots, err := s.ensureSlots(ctx, sc, now)
		if err != nil {
			return err
		}

		d.Status = domain.DuelStatusActive
		started := now
		d.StartedAt = &started
		sc.events = append(sc.events, event.NewDuelActivatedEvent(d, s.clock.SessionExpiresAt(started)))

		// both sides may have finished before activation
		if verdict := s.clock.Evaluate(d, now); verdict.Due() {
			expiry.Apply(d, verdict, now)
			sc.events = append(sc.events, event.NewDuelCompletedEvent(d))
		}
		if err := sc.tx.UpdateDuel(ctx, d); err != nil {
			return s.wrapUpdateErr(err)
		}

		sc.slots = slots
		log.Info(LogMsgDuelActivated, "duel_id", d.ID, "slots", len(slots))
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrContentUnavailable) {
			log.Warn(LogMsgActivationAborted, "duel_id", duelID, "error", err)
		}
		return nil, err
	}

	view := s.buildView(sc.duel, userID, now)
	view.Slots = sc.slots
	if view.Slots == nil && sc.duel.Status != domain.DuelStatusPending && sc.duel.Status != domain.DuelStatusCancelled {
		view.Slots = s.loadSlots(ctx, sc.duel.ID)
	}
	return view, sc.deferred
}

// ensureSlots returns the duel's slots, resolving and storing them on first use
func (s *service) ensureSlots(ctx context.Context, sc *txScope, now time.Time) ([]domain.QuizSlot, error) {
	slots, err := sc.tx.GetSlots(ctx, sc.duel.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextLoadSlots, err)
	}
	if len(slots) > 0 {
		return slots, nil
	}

	slots, err = s.resolver.ResolveSet(ctx, sc.duel, now)
	if err != nil {
		return nil, err
	}
	if err := sc.tx.InsertSlots(ctx, slots); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextInsertSlots, err)
	}
	return slots, nil
}

// canPlayPending reports whether side may answer before activation:
// the creator always, the opponent once the invitation is accepted.
func (s *service) canPlayPending(ctx context.Context, sc *txScope, side domain.Participant) error {
	if side == domain.ParticipantCreator {
		return nil
	}
	inv, err := sc.tx.GetInvitationByDuelForUpdate(ctx, sc.duel.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextLoadInvitation, err)
	}
	if inv.Status != domain.InvitationAccepted {
		return fmt.Errorf("%w: %s", domain.ErrInvalidTransition, ErrMsgAcceptBeforePlaying)
	}
	return nil
}

// RecordAnswer advances the caller's progress by one slot. The creator may
// play as soon as the duel exists and the opponent once they accept; slots
// are resolved on the first answer when the duel is not active yet.
// Slots must be answered in order; an active duel completes as soon as both participants finish.
func (s *service) RecordAnswer(ctx context.Context, userID, duelID uuid.UUID, ordinal int, correct bool) (*domain.DuelView, error) {
	now := s.now()
	sc, err := s.withDuelTx(ctx, duelID, func(sc *txScope) error {
		d := sc.duel
		side := d.ParticipantOf(userID)
		if side == domain.ParticipantNone {
			return domain.ErrNotDuelMember
		}

		applied, err := s.applyDue(ctx, sc, now)
		if err != nil {
			return err
		}
		if applied {
			sc.deferred = expiredTransitionErr(d)
			return nil
		}
		switch d.Status {
		case domain.DuelStatusActive:
		case domain.DuelStatusPending:
			if err := s.canPlayPending(ctx, sc, side); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: cannot answer in a %s duel", domain.ErrInvalidTransition, d.Status)
		}

		total := d.TotalQuizzes()
		progress := d.ProgressOf(side)
		switch {
		case ordinal < 1 || ordinal > total:
			return fmt.Errorf("%w: %d outside 1-%d", domain.ErrSlotNotFound, ordinal, total)
		case ordinal <= progress:
			return fmt.Errorf("%w: ordinal %d", domain.ErrSlotAlreadyAnswered, ordinal)
		case ordinal > progress+1:
			return fmt.Errorf("%w: expected ordinal %d, got %d", domain.ErrSlotOutOfOrder, progress+1, ordinal)
		}

		slots, err := s.ensureSlots(ctx, sc, now)
		if err != nil {
			return err
		}
		slot, ok := findSlot(slots, ordinal)
		if !ok {
			return fmt.Errorf("%w: %d", domain.ErrSlotNotFound, ordinal)
		}

		points := 0
		if correct {
			points = slot.Points
		}
		if side == domain.ParticipantCreator {
			d.CreatorProgress++
			d.CreatorScore += points
		} else {
			d.OpponentProgress++
			d.OpponentScore += points
		}

		if d.Status == domain.DuelStatusActive && d.BothFinished() {
			verdict := s.clock.Evaluate(d, now)
			expiry.Apply(d, verdict, now)
			sc.events = append(sc.events, event.NewDuelCompletedEvent(d))
		}

		if err := sc.tx.UpdateDuel(ctx, d); err != nil {
			return s.wrapUpdateErr(err)
		}
		sc.slots = slots
		metrics.AnswersRecorded.WithLabelValues(fmt.Sprintf("%t", correct)).Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := s.buildView(sc.duel, userID, now)
	view.Slots = sc.slots
	return view, sc.deferred
}

func findSlot(slots []domain.QuizSlot, ordinal int) (domain.QuizSlot, bool) {
	for _, slot := range slots {
		if slot.Ordinal == ordinal {
			return slot, true
		}
	}
	return domain.QuizSlot{}, false
}

func (s *service) wrapUpdateErr(err error) error {
	if errors.Is(err, domain.ErrConcurrentModification) {
		return err
	}
	return fmt.Errorf("%s: %w", ErrContextUpdateDuel, err)
}

func (s *service) publish(ctx context.Context, events ...event.Event) {
	if s.bus == nil {
		return
	}
	for _, evt := range events {
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Error(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}
