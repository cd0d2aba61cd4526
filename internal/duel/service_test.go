package duel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuizDuel_Go/internal/concurrency"
	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/expiry"
	"github.com/osse101/QuizDuel_Go/internal/invitation"
	"github.com/osse101/QuizDuel_Go/internal/quiz"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	svc      *service
	store    *fakeStore
	bus      *recordingBus
	social   *fakeSocial
	catalog  *staticCatalog
	now      time.Time
	creator  uuid.UUID
	opponent uuid.UUID
	stranger uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    newFakeStore(),
		bus:      &recordingBus{},
		catalog:  &staticCatalog{},
		now:      t0,
		creator:  uuid.New(),
		opponent: uuid.New(),
		stranger: uuid.New(),
	}
	h.social = &fakeSocial{
		friends: make(map[[2]uuid.UUID]bool),
		grades:  map[uuid.UUID]int{},
	}
	h.social.befriend(h.creator, h.opponent)
	h.social.grades[h.creator] = 3
	h.social.grades[h.opponent] = 4

	for i := 0; i < 12; i++ {
		h.catalog.items = append(h.catalog.items,
			domain.QuizContent{ID: uuid.New(), SubjectID: "math", GradeLevel: 3, Difficulty: 2},
			domain.QuizContent{ID: uuid.New(), SubjectID: "science", GradeLevel: 5, Difficulty: 1, Points: 5},
		)
	}

	clock := expiry.DefaultClock()
	svc := NewService(Deps{
		Repo:        h.store,
		Invitations: invitation.NewService(h.store, clock),
		Resolver:    quiz.NewResolver(h.catalog, quiz.Config{DefaultPoints: 10}),
		Friends:     h.social,
		Profiles:    h.social,
		Locker:      concurrency.NewLockManager(),
		Bus:         h.bus,
		Clock:       clock,
	}, Config{}).(*service)
	svc.now = func() time.Time { return h.now }
	h.svc = svc
	return h
}

func (h *harness) at(d time.Duration) {
	h.now = t0.Add(d)
}

func (h *harness) create(t *testing.T, subjects ...domain.SubjectAllocation) uuid.UUID {
	t.Helper()
	if len(subjects) == 0 {
		subjects = []domain.SubjectAllocation{{SubjectID: "Math", QuizCount: 8}}
	}
	view, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: h.opponent,
		Subjects:   subjects,
		Difficulty: domain.DifficultyMedium,
	})
	require.NoError(t, err)
	return view.Duel.ID
}

func (h *harness) activate(t *testing.T, duelID uuid.UUID) {
	t.Helper()
	_, err := h.svc.Respond(context.Background(), h.opponent, duelID, true)
	require.NoError(t, err)
	_, err = h.svc.Activate(context.Background(), h.creator, duelID)
	require.NoError(t, err)
}

func (h *harness) play(t *testing.T, user, duelID uuid.UUID, correct ...bool) {
	t.Helper()
	for _, c := range correct {
		d := h.store.duel(duelID)
		next := d.ProgressOf(d.ParticipantOf(user)) + 1
		_, err := h.svc.RecordAnswer(context.Background(), user, duelID, next, c)
		require.NoError(t, err)
	}
}

func answers(n int, correct bool) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = correct
	}
	return out
}

func assertWinnerInvariant(t *testing.T, d *domain.Duel) {
	t.Helper()
	if d.WinnerID != nil {
		assert.Equal(t, domain.DuelStatusCompleted, d.Status)
		assert.Contains(t, []uuid.UUID{d.CreatorID, d.OpponentID}, *d.WinnerID)
	}
	assert.LessOrEqual(t, d.CreatorProgress, d.TotalQuizzes())
	assert.LessOrEqual(t, d.OpponentProgress, d.TotalQuizzes())
}

func TestCreateDuel(t *testing.T) {
	h := newHarness(t)

	view, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: h.opponent,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "  Math ", QuizCount: 3}, {SubjectID: "Science", QuizCount: 2}},
		Difficulty: domain.DifficultyEasy,
	})

	require.NoError(t, err)
	d := view.Duel
	assert.Equal(t, domain.DuelStatusPending, d.Status)
	assert.Equal(t, 3, d.GradeLevel, "grade comes from the creator's profile")
	assert.Equal(t, "math", d.Subjects[0].SubjectID)
	assert.Equal(t, 5, view.TotalQuizzes)
	assert.Equal(t, domain.BucketNotStarted, view.Bucket)
	assert.Equal(t, domain.ParticipantCreator, view.Role)
	require.NotNil(t, view.ExpiresAt)
	assert.Equal(t, t0.Add(24*time.Hour), *view.ExpiresAt)
	assert.Equal(t, int64(24*60*60), view.RemainingSeconds)

	inv := h.store.invitation(d.ID)
	require.NotNil(t, inv)
	assert.Equal(t, h.opponent, inv.UserID)
	assert.Equal(t, domain.InvitationPending, inv.Status)

	evt, ok := h.bus.last(event.InvitationCreated)
	require.True(t, ok)
	assert.Equal(t, []string{h.opponent.String()}, evt.Recipients())
}

func TestCreateDuel_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h *harness, req *CreateDuelRequest)
		wantErr error
	}{
		{"self duel", func(h *harness, req *CreateDuelRequest) { req.OpponentID = h.creator }, domain.ErrSelfDuel},
		{"not friends", func(h *harness, req *CreateDuelRequest) { req.OpponentID = h.stranger }, domain.ErrNotFriends},
		{"unknown difficulty", func(h *harness, req *CreateDuelRequest) { req.Difficulty = "brutal" }, domain.ErrInvalidInput},
		{"no subjects", func(h *harness, req *CreateDuelRequest) { req.Subjects = nil }, domain.ErrInvalidInput},
		{"too many subjects", func(h *harness, req *CreateDuelRequest) {
			req.Subjects = []domain.SubjectAllocation{
				{SubjectID: "a", QuizCount: 1}, {SubjectID: "b", QuizCount: 1},
				{SubjectID: "c", QuizCount: 1}, {SubjectID: "d", QuizCount: 1},
			}
		}, domain.ErrInvalidInput},
		{"duplicate subject", func(h *harness, req *CreateDuelRequest) {
			req.Subjects = []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 1}, {SubjectID: "MATH", QuizCount: 1}}
		}, domain.ErrInvalidInput},
		{"zero quizzes", func(h *harness, req *CreateDuelRequest) {
			req.Subjects = []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 0}}
		}, domain.ErrInvalidInput},
		{"too many quizzes", func(h *harness, req *CreateDuelRequest) {
			req.Subjects = []domain.SubjectAllocation{{SubjectID: "math", QuizCount: DefaultMaxQuizzesPerSubject + 1}}
		}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			req := CreateDuelRequest{
				OpponentID: h.opponent,
				Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 2}},
				Difficulty: domain.DifficultyMedium,
			}
			tt.mutate(h, &req)

			_, err := h.svc.CreateDuel(context.Background(), h.creator, req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, h.store.duels)
		})
	}
}

func TestCreateDuel_NotFriendsIsUnauthorized(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: h.stranger,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 1}},
		Difficulty: domain.DifficultyEasy,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateDuel_LapsedPendingDoesNotBlock(t *testing.T) {
	h := newHarness(t)
	first := h.create(t)

	h.at(25 * time.Hour)
	view, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: h.opponent,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 2}},
		Difficulty: domain.DifficultyEasy,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, view.Duel.ID)
	assert.Equal(t, domain.DuelStatusPending, view.Duel.Status)

	old := h.store.duel(first)
	assert.Equal(t, domain.DuelStatusCancelled, old.Status)
	assert.Equal(t, domain.OutcomeExpiredInvitation, old.OutcomeReason)
	assert.Equal(t, domain.InvitationDeclined, h.store.invitation(first).Status)
	assert.Contains(t, h.bus.types(), event.DuelCancelled)
}

func TestCreateDuel_DuplicatePending(t *testing.T) {
	h := newHarness(t)
	h.create(t)

	_, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: h.opponent,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "science", QuizCount: 1}},
		Difficulty: domain.DifficultyHard,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateInvitation)

	// the reverse direction is a different pair
	_, err = h.svc.CreateDuel(context.Background(), h.opponent, CreateDuelRequest{
		OpponentID: h.creator,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "science", QuizCount: 1}},
		Difficulty: domain.DifficultyHard,
	})
	assert.NoError(t, err)
}

// Scenario A: nobody responds and the first read past 24h cancels the duel
func TestScenario_InvitationLapsesOnRead(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	h.at(24*time.Hour + time.Second)
	view, err := h.svc.GetDuelView(context.Background(), h.creator, id)

	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusCancelled, view.Duel.Status)
	assert.Nil(t, view.Duel.WinnerID)
	assert.Equal(t, domain.OutcomeExpiredInvitation, view.Duel.OutcomeReason)
	require.NotNil(t, view.Outcome)
	assert.False(t, view.Outcome.Draw)
	assert.Equal(t, domain.BucketCompleted, view.Bucket)

	stored := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusCancelled, stored.Status, "transition is persisted before the read returns")
	assert.Equal(t, domain.InvitationDeclined, h.store.invitation(id).Status)
	assert.Contains(t, h.bus.types(), event.DuelCancelled)
	assert.NotContains(t, h.bus.types(), event.DuelStandaloneResult)
}

// Scenario B: accept then activate generates exactly totalQuizzes slots
func TestScenario_Activation(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 4}, domain.SubjectAllocation{SubjectID: "science", QuizCount: 3})

	h.at(time.Hour)
	view, err := h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusPending, view.Duel.Status)
	assert.Equal(t, domain.InvitationAccepted, view.Invitation.Status)

	h.at(time.Hour + time.Minute)
	view, err = h.svc.Activate(context.Background(), h.creator, id)
	require.NoError(t, err)

	assert.Equal(t, domain.DuelStatusActive, view.Duel.Status)
	require.NotNil(t, view.Duel.StartedAt)
	assert.Equal(t, t0.Add(time.Hour+time.Minute), *view.Duel.StartedAt)
	assert.Len(t, view.Slots, 7)
	slots, _ := h.store.GetSlots(context.Background(), id)
	require.Len(t, slots, 7)
	for i, slot := range slots {
		assert.Equal(t, i+1, slot.Ordinal)
	}
	assert.Equal(t, "science", slots[6].SubjectID)
	assert.Equal(t, 5, slots[6].Points, "content points win over the default")
	assert.Equal(t, 10, slots[0].Points)

	assert.Equal(t, domain.BucketYourTurn, view.Bucket)
	assert.Equal(t, int64(30*60), view.RemainingSeconds)
	assert.Contains(t, h.bus.types(), event.DuelActivated)
}

// Scenario C: both finish and the higher score wins on the next read
func TestScenario_BothFinish(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.at(time.Hour)
	h.activate(t, id)

	h.at(time.Hour + 10*time.Minute)
	h.play(t, h.creator, id, answers(8, true)...)

	view, err := h.svc.GetDuelView(context.Background(), h.creator, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BucketWaitingOnOpponent, view.Bucket)

	h.at(time.Hour + 15*time.Minute)
	h.play(t, h.opponent, id, append(answers(6, true), false, false)...)

	view, err = h.svc.GetDuelView(context.Background(), h.opponent, id)
	require.NoError(t, err)
	d := view.Duel
	assert.Equal(t, domain.DuelStatusCompleted, d.Status)
	assert.Equal(t, 80, d.CreatorScore)
	assert.Equal(t, 60, d.OpponentScore)
	require.NotNil(t, d.WinnerID)
	assert.Equal(t, h.creator, *d.WinnerID)
	assert.Equal(t, domain.OutcomeFinished, d.OutcomeReason)
	assertWinnerInvariant(t, d)

	evt, ok := h.bus.last(event.DuelCompleted)
	require.True(t, ok)
	payload, err := event.DecodePayload[event.DuelResultPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, h.creator.String(), payload.WinnerID)
}

func TestScenario_BothFinishTie(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 2})
	h.activate(t, id)

	h.play(t, h.creator, id, true, false)
	h.play(t, h.opponent, id, false, true)

	d := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusCompleted, d.Status)
	assert.Nil(t, d.WinnerID)
	assert.Equal(t, domain.OutcomeFinished, d.OutcomeReason)
}

// Scenario D: a sole finisher wins by forfeit when the session lapses
func TestScenario_ForfeitOnTimeout(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.at(time.Hour)
	h.activate(t, id)

	h.at(time.Hour + 5*time.Minute)
	h.play(t, h.creator, id, answers(8, false)...)

	h.at(time.Hour + 30*time.Minute)
	view, err := h.svc.GetDuelView(context.Background(), h.opponent, id)
	require.NoError(t, err)

	d := view.Duel
	assert.Equal(t, domain.DuelStatusCompleted, d.Status)
	require.NotNil(t, d.WinnerID)
	assert.Equal(t, h.creator, *d.WinnerID, "finishing wins even with zero score")
	assert.Equal(t, domain.OutcomeForfeitTimeout, d.OutcomeReason)
	assertWinnerInvariant(t, d)
}

// Scenario E: nobody finishes in the session window and the duel is a draw
func TestScenario_SessionTimeoutDraw(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.activate(t, id)
	h.play(t, h.creator, id, answers(7, true)...)
	h.play(t, h.opponent, id, true)

	h.at(31 * time.Minute)
	view, err := h.svc.GetDuelView(context.Background(), h.creator, id)
	require.NoError(t, err)

	assert.Equal(t, domain.DuelStatusCompleted, view.Duel.Status)
	assert.Nil(t, view.Duel.WinnerID)
	assert.Equal(t, domain.OutcomeSessionTimeout, view.Duel.OutcomeReason)
	require.NotNil(t, view.Outcome)
	assert.True(t, view.Outcome.Draw)
}

func TestRespond_AcceptAfterLapse(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	h.at(24 * time.Hour)
	view, err := h.svc.Respond(context.Background(), h.opponent, id, true)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrExpired)
	require.NotNil(t, view)
	assert.Equal(t, domain.DuelStatusCancelled, view.Duel.Status)
	assert.Equal(t, domain.DuelStatusCancelled, h.store.duel(id).Status, "expiry is committed even though the write failed")
	assert.Equal(t, domain.InvitationDeclined, h.store.invitation(id).Status)
}

func TestRespond_DeclineIsIdempotent(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	h.at(time.Hour)
	first, err := h.svc.Respond(context.Background(), h.opponent, id, false)
	require.NoError(t, err)
	afterFirst := h.store.duel(id)

	h.at(2 * time.Hour)
	second, err := h.svc.Respond(context.Background(), h.opponent, id, false)
	require.NoError(t, err)

	assert.Equal(t, domain.DuelStatusCancelled, first.Duel.Status)
	assert.Equal(t, domain.OutcomeDeclined, second.Duel.OutcomeReason)
	assert.Equal(t, afterFirst, h.store.duel(id), "second decline writes nothing")

	cancelled := 0
	for _, typ := range h.bus.types() {
		if typ == event.DuelCancelled {
			cancelled++
		}
	}
	assert.Equal(t, 1, cancelled)
}

func TestRespond_DeclineAfterAcceptBeforeActivation(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	_, err := h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)
	view, err := h.svc.Respond(context.Background(), h.opponent, id, false)
	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusCancelled, view.Duel.Status)

	_, err = h.svc.Activate(context.Background(), h.creator, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRespond_Guards(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	_, err := h.svc.Respond(context.Background(), h.creator, id, true)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.svc.Respond(context.Background(), h.stranger, id, false)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.svc.Respond(context.Background(), h.opponent, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)
	_, err = h.svc.Respond(context.Background(), h.opponent, id, true)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
}

func TestRespond_DeclineActiveDuel(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.activate(t, id)

	_, err := h.svc.Respond(context.Background(), h.opponent, id, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.DuelStatusActive, h.store.duel(id).Status)
}

func TestActivate_Guards(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	_, err := h.svc.Activate(context.Background(), h.creator, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "invitation still pending")

	_, err = h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)

	_, err = h.svc.Activate(context.Background(), h.opponent, id)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.svc.Activate(context.Background(), h.stranger, id)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestActivate_Twice(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.activate(t, id)
	before, _ := h.store.GetSlots(context.Background(), id)
	version := h.store.duel(id).Version

	h.at(time.Minute)
	view, err := h.svc.Activate(context.Background(), h.creator, id)
	require.NoError(t, err)

	after, _ := h.store.GetSlots(context.Background(), id)
	assert.Equal(t, before, after, "slots are not regenerated")
	assert.Equal(t, version, h.store.duel(id).Version)
	assert.Equal(t, t0, *view.Duel.StartedAt)
	assert.Len(t, view.Slots, 8)
}

func TestActivate_ContentUnavailableStaysPending(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 1}, domain.SubjectAllocation{SubjectID: "art", QuizCount: 1})
	_, err := h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)

	_, err = h.svc.Activate(context.Background(), h.creator, id)
	assert.ErrorIs(t, err, domain.ErrContentUnavailable)

	d := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusPending, d.Status)
	assert.Nil(t, d.StartedAt)
	slots, _ := h.store.GetSlots(context.Background(), id)
	assert.Empty(t, slots)

	// retry succeeds once content exists at the subject-only tier
	h.catalog.items = append(h.catalog.items, domain.QuizContent{ID: uuid.New(), SubjectID: "art", GradeLevel: 9, Difficulty: 3})
	h.svc.resolver.Purge()
	_, err = h.svc.Activate(context.Background(), h.creator, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusActive, h.store.duel(id).Status)
}

func TestActivate_AfterInvitationLapse(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	_, err := h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)

	h.at(25 * time.Hour)
	_, err = h.svc.Activate(context.Background(), h.creator, id)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrExpired)
	assert.Equal(t, domain.DuelStatusCancelled, h.store.duel(id).Status)
}

func TestRecordAnswer_Ordering(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 3})
	h.activate(t, id)
	ctx := context.Background()

	_, err := h.svc.RecordAnswer(ctx, h.creator, id, 2, true)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfOrder)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	view, err := h.svc.RecordAnswer(ctx, h.creator, id, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Duel.CreatorProgress)
	assert.Equal(t, 10, view.Duel.CreatorScore)

	_, err = h.svc.RecordAnswer(ctx, h.creator, id, 1, true)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyAnswered)

	_, err = h.svc.RecordAnswer(ctx, h.creator, id, 4, true)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound, "no fourth slot")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.svc.RecordAnswer(ctx, h.stranger, id, 1, true)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// the opponent's counter is independent
	view, err = h.svc.RecordAnswer(ctx, h.opponent, id, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Duel.OpponentProgress)
	assert.Equal(t, 0, view.Duel.OpponentScore)
	assert.Equal(t, 1, view.Duel.CreatorProgress)
}

func TestRecordAnswer_StateGuards(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 1})

	_, err := h.svc.RecordAnswer(context.Background(), h.opponent, id, 1, true)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "opponent has not accepted")
	assert.Zero(t, h.store.duel(id).OpponentProgress)

	_, err = h.svc.Respond(context.Background(), h.opponent, id, false)
	require.NoError(t, err)
	_, err = h.svc.RecordAnswer(context.Background(), h.creator, id, 1, true)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelled duel")
	assert.NotErrorIs(t, err, domain.ErrExpired)
}

func TestRecordAnswer_AfterSessionLapse(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 2})
	h.activate(t, id)
	h.play(t, h.opponent, id, true, true)

	h.at(30 * time.Minute)
	view, err := h.svc.RecordAnswer(context.Background(), h.creator, id, 1, true)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrExpired)
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Duel.CreatorProgress, "the late answer is not counted")
	d := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusCompleted, d.Status)
	assert.Equal(t, domain.OutcomeForfeitTimeout, d.OutcomeReason)
	assert.Equal(t, h.opponent, *d.WinnerID)
}

func TestRecordAnswer_ConcurrentSameOrdinal(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 3})
	h.activate(t, id)

	const callers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.svc.RecordAnswer(context.Background(), h.creator, id, 1, true); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	d := h.store.duel(id)
	assert.Equal(t, 1, d.CreatorProgress)
	assert.Equal(t, 10, d.CreatorScore)
}

func TestConcurrentAcceptDeclineAndExpiry(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.at(24 * time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = h.svc.Respond(context.Background(), h.opponent, id, true)
		}()
		go func() {
			defer wg.Done()
			_, _ = h.svc.GetDuelView(context.Background(), h.creator, id)
		}()
		go func() {
			defer wg.Done()
			_, _ = h.svc.SweepExpired(context.Background())
		}()
	}
	wg.Wait()

	d := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusCancelled, d.Status)
	assert.Equal(t, domain.OutcomeExpiredInvitation, d.OutcomeReason)

	cancelled := 0
	for _, typ := range h.bus.types() {
		if typ == event.DuelCancelled {
			cancelled++
		}
	}
	assert.Equal(t, 1, cancelled, "the transition is applied exactly once")
}

func TestGetDuelView_Guards(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	_, err := h.svc.GetDuelView(context.Background(), h.stranger, id)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = h.svc.GetDuelView(context.Background(), h.creator, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	view, err := h.svc.GetDuelView(context.Background(), h.opponent, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantOpponent, view.Role)
	require.NotNil(t, view.Invitation)
	assert.Empty(t, view.Slots)
}

func TestListDuels_Buckets(t *testing.T) {
	h := newHarness(t)
	third := uuid.New()
	h.social.befriend(h.creator, third)
	ctx := context.Background()

	declined := h.create(t)
	_, err := h.svc.Respond(ctx, h.opponent, declined, false)
	require.NoError(t, err)

	h.at(time.Minute)
	active := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 1})
	h.activate(t, active)
	h.play(t, h.creator, active, true)

	h.at(2 * time.Minute)
	_, err = h.svc.CreateDuel(ctx, h.creator, CreateDuelRequest{
		OpponentID: third,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 1}},
		Difficulty: domain.DifficultyMedium,
	})
	require.NoError(t, err)

	all, err := h.svc.ListDuels(ctx, h.creator, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.BucketWaitingOnOpponent, all[0].Bucket)
	assert.Equal(t, domain.BucketNotStarted, all[1].Bucket)
	assert.Equal(t, domain.BucketCompleted, all[2].Bucket)
	assert.Equal(t, declined, all[2].Duel.ID)

	theirs, err := h.svc.ListDuels(ctx, h.opponent, domain.BucketYourTurn)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, active, theirs[0].Duel.ID)

	_, err = h.svc.ListDuels(ctx, h.creator, "someday")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListDuels_SettlesLapsedSessions(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.activate(t, id)

	h.at(time.Hour)
	views, err := h.svc.ListDuels(context.Background(), h.opponent, domain.BucketCompleted)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.OutcomeSessionTimeout, views[0].Duel.OutcomeReason)
	assert.Equal(t, domain.DuelStatusCompleted, h.store.duel(id).Status)
}

func TestListInvitations(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	received, err := h.svc.ListInvitations(context.Background(), h.opponent, domain.DirectionReceived)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, domain.InvitationPending, received[0].Invitation.Status)
	assert.Equal(t, t0.Add(24*time.Hour), received[0].ExpiresAt)

	sent, err := h.svc.ListInvitations(context.Background(), h.opponent, domain.DirectionSent)
	require.NoError(t, err)
	assert.Empty(t, sent)

	h.at(24 * time.Hour)
	sent, err = h.svc.ListInvitations(context.Background(), h.creator, domain.DirectionSent)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.InvitationDeclined, sent[0].Invitation.Status)
	assert.Equal(t, domain.DuelStatusCancelled, sent[0].DuelStatus)
	assert.Equal(t, domain.DuelStatusCancelled, h.store.duel(id).Status)

	_, err = h.svc.ListInvitations(context.Background(), h.creator, "both")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSweepExpired(t *testing.T) {
	h := newHarness(t)
	lapsedInvite := h.create(t)

	other := uuid.New()
	h.social.befriend(h.creator, other)
	view, err := h.svc.CreateDuel(context.Background(), h.creator, CreateDuelRequest{
		OpponentID: other,
		Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 1}},
		Difficulty: domain.DifficultyMedium,
	})
	require.NoError(t, err)
	lapsedSession := view.Duel.ID
	h.at(23 * time.Hour)
	_, err = h.svc.Respond(context.Background(), other, lapsedSession, true)
	require.NoError(t, err)
	_, err = h.svc.Activate(context.Background(), h.creator, lapsedSession)
	require.NoError(t, err)

	h.at(23*time.Hour + 10*time.Minute)
	settled, err := h.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, settled, "nothing due yet")

	h.at(24 * time.Hour)
	settled, err = h.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, settled)
	assert.Equal(t, domain.DuelStatusCancelled, h.store.duel(lapsedInvite).Status)
	assert.Equal(t, domain.DuelStatusCompleted, h.store.duel(lapsedSession).Status)

	settled, err = h.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, settled, "terminal duels are left alone")
}

func TestRecordAnswer_CreatorPlaysWhilePending(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 3})

	h.play(t, h.creator, id, true, false)

	d := h.store.duel(id)
	assert.Equal(t, domain.DuelStatusPending, d.Status)
	assert.Equal(t, 2, d.CreatorProgress)
	assert.Equal(t, 10, d.CreatorScore)
	early, err := h.store.GetSlots(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, early, 3, "slots are resolved on the first answer")

	view, err := h.svc.GetDuelView(context.Background(), h.creator, id)
	require.NoError(t, err)
	assert.Len(t, view.Slots, 3)

	// the opponent joins after accepting; activation keeps the same slots
	_, err = h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)
	h.play(t, h.opponent, id, true)

	view, err = h.svc.Activate(context.Background(), h.creator, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusActive, view.Duel.Status)
	assert.Equal(t, early, view.Slots)
	assert.Equal(t, 2, view.Duel.CreatorProgress)
	assert.Equal(t, 1, view.Duel.OpponentProgress)
}

func TestActivate_CompletesWhenBothFinishedEarly(t *testing.T) {
	h := newHarness(t)
	id := h.create(t, domain.SubjectAllocation{SubjectID: "math", QuizCount: 2})
	h.play(t, h.creator, id, true, true)
	_, err := h.svc.Respond(context.Background(), h.opponent, id, true)
	require.NoError(t, err)
	h.play(t, h.opponent, id, true, false)
	assert.Equal(t, domain.DuelStatusPending, h.store.duel(id).Status, "completion waits for activation")

	view, err := h.svc.Activate(context.Background(), h.creator, id)
	require.NoError(t, err)

	assert.Equal(t, domain.DuelStatusCompleted, view.Duel.Status)
	require.NotNil(t, view.Duel.WinnerID)
	assert.Equal(t, h.creator, *view.Duel.WinnerID)
	assert.Contains(t, h.bus.types(), event.DuelActivated)
	assert.Contains(t, h.bus.types(), event.DuelCompleted)
}

func TestStandaloneResultOnLapseWithCreatorProgress(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)
	h.play(t, h.creator, id, true, true)

	h.at(25 * time.Hour)
	view, err := h.svc.GetDuelView(context.Background(), h.creator, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DuelStatusCancelled, view.Duel.Status)
	assert.Equal(t, 20, view.Duel.CreatorScore, "the creator keeps the solo result")

	evt, ok := h.bus.last(event.DuelStandaloneResult)
	require.True(t, ok)
	assert.Equal(t, []string{h.creator.String()}, evt.Recipients())
}

func TestBucketFor(t *testing.T) {
	creator, opponent := uuid.New(), uuid.New()
	base := domain.Duel{CreatorID: creator, OpponentID: opponent, Subjects: []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 2}}}

	tests := []struct {
		name   string
		status domain.DuelStatus
		prog   int
		want   domain.DuelBucket
	}{
		{"pending", domain.DuelStatusPending, 0, domain.BucketNotStarted},
		{"active with slots left", domain.DuelStatusActive, 1, domain.BucketYourTurn},
		{"active and finished", domain.DuelStatusActive, 2, domain.BucketWaitingOnOpponent},
		{"completed", domain.DuelStatusCompleted, 2, domain.BucketCompleted},
		{"cancelled", domain.DuelStatusCancelled, 0, domain.BucketCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Status = tt.status
			d.CreatorProgress = tt.prog
			assert.Equal(t, tt.want, BucketFor(&d, creator))
		})
	}
}
