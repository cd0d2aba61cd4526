package duel

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/repository"
)

// fakeStore is an in-memory duel store with transactional staging.
// It enforces the pending-pair uniqueness and the optimistic version check
// the postgres adapter does.
type fakeStore struct {
	mu          sync.Mutex
	duels       map[uuid.UUID]*domain.Duel
	invitations map[uuid.UUID]*domain.Invitation
	slots       map[uuid.UUID][]domain.QuizSlot
	commits     int
	beginErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		duels:       make(map[uuid.UUID]*domain.Duel),
		invitations: make(map[uuid.UUID]*domain.Invitation),
		slots:       make(map[uuid.UUID][]domain.QuizSlot),
	}
}

func (f *fakeStore) duel(id uuid.UUID) *domain.Duel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.duels[id]; ok {
		return d.Clone()
	}
	return nil
}

func (f *fakeStore) invitation(duelID uuid.UUID) *domain.Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.invitations[duelID]; ok {
		c := *inv
		return &c
	}
	return nil
}

func (f *fakeStore) GetDuel(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	if d := f.duel(id); d != nil {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.QuizSlot(nil), f.slots[duelID]...), nil
}

func (f *fakeStore) ListDuelsForUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Duel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Duel
	for _, d := range f.duels {
		if d.CreatorID == userID || d.OpponentID == userID {
			out = append(out, *d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindPendingDuel(ctx context.Context, creatorID, opponentID uuid.UUID) (*domain.Duel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.duels {
		if d.Status == domain.DuelStatusPending && d.CreatorID == creatorID && d.OpponentID == opponentID {
			return d.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListDueForExpiry(ctx context.Context, invitationCutoff, sessionCutoff time.Time, limit int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for id, d := range f.duels {
		switch {
		case d.Status == domain.DuelStatusPending && !d.CreatedAt.After(invitationCutoff):
			out = append(out, id)
		case d.Status == domain.DuelStatusActive && d.StartedAt != nil && !d.StartedAt.After(sessionCutoff):
			out = append(out, id)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetInvitationByDuel(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	if inv := f.invitation(duelID); inv != nil {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListInvitationsForUser(ctx context.Context, userID uuid.UUID, direction domain.InvitationDirection, limit int) ([]domain.InvitationView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.InvitationView
	for duelID, inv := range f.invitations {
		d := f.duels[duelID]
		if direction == domain.DirectionSent && d.CreatorID != userID {
			continue
		}
		if direction == domain.DirectionReceived && inv.UserID != userID {
			continue
		}
		out = append(out, domain.InvitationView{
			Invitation: *inv,
			CreatorID:  d.CreatorID,
			OpponentID: d.OpponentID,
			DuelStatus: d.Status,
			Subjects:   d.Subjects,
			Difficulty: d.Difficulty,
			ExpiresAt:  d.CreatedAt.Add(24 * time.Hour),
		})
	}
	return out, nil
}

func (f *fakeStore) BeginDuelTx(ctx context.Context) (repository.DuelTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeTx{
		store:       f,
		duels:       make(map[uuid.UUID]*domain.Duel),
		invitations: make(map[uuid.UUID]*domain.Invitation),
		slots:       make(map[uuid.UUID][]domain.QuizSlot),
	}, nil
}

type fakeTx struct {
	store       *fakeStore
	duels       map[uuid.UUID]*domain.Duel
	invitations map[uuid.UUID]*domain.Invitation
	slots       map[uuid.UUID][]domain.QuizSlot
	closed      bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range t.duels {
		s.duels[id] = d
	}
	for id, inv := range t.invitations {
		s.invitations[id] = inv
	}
	for id, slots := range t.slots {
		s.slots[id] = slots
	}
	s.commits++
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	return nil
}

func (t *fakeTx) InsertDuel(ctx context.Context, d *domain.Duel) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.duels {
		if existing.Status == domain.DuelStatusPending && existing.CreatorID == d.CreatorID && existing.OpponentID == d.OpponentID {
			return domain.ErrDuplicateInvitation
		}
	}
	d.Version = 1
	t.duels[d.ID] = d.Clone()
	return nil
}

func (t *fakeTx) GetDuelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Duel, error) {
	if d, ok := t.duels[id]; ok {
		return d.Clone(), nil
	}
	if d := t.store.duel(id); d != nil {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (t *fakeTx) UpdateDuel(ctx context.Context, d *domain.Duel) error {
	current, ok := t.duels[d.ID]
	if !ok {
		current = t.store.duel(d.ID)
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if current.Version != d.Version {
		return domain.ErrConcurrentModification
	}
	d.Version++
	t.duels[d.ID] = d.Clone()
	return nil
}

func (t *fakeTx) InsertSlots(ctx context.Context, slots []domain.QuizSlot) error {
	if len(slots) == 0 {
		return errors.New("no slots")
	}
	t.slots[slots[0].DuelID] = append([]domain.QuizSlot(nil), slots...)
	return nil
}

func (t *fakeTx) GetSlots(ctx context.Context, duelID uuid.UUID) ([]domain.QuizSlot, error) {
	if slots, ok := t.slots[duelID]; ok {
		return append([]domain.QuizSlot(nil), slots...), nil
	}
	return t.store.GetSlots(ctx, duelID)
}

func (t *fakeTx) InsertInvitation(ctx context.Context, inv *domain.Invitation) error {
	c := *inv
	t.invitations[inv.DuelID] = &c
	return nil
}

func (t *fakeTx) GetInvitationByDuelForUpdate(ctx context.Context, duelID uuid.UUID) (*domain.Invitation, error) {
	if inv, ok := t.invitations[duelID]; ok {
		c := *inv
		return &c, nil
	}
	if inv := t.store.invitation(duelID); inv != nil {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (t *fakeTx) UpdateInvitation(ctx context.Context, inv *domain.Invitation) error {
	c := *inv
	t.invitations[inv.DuelID] = &c
	return nil
}

// fakeSocial answers friendship and profile lookups from fixed sets
type fakeSocial struct {
	friends map[[2]uuid.UUID]bool
	grades  map[uuid.UUID]int
}

func (f *fakeSocial) befriend(a, b uuid.UUID) {
	f.friends[[2]uuid.UUID{a, b}] = true
}

func (f *fakeSocial) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.friends[[2]uuid.UUID{a, b}] || f.friends[[2]uuid.UUID{b, a}], nil
}

func (f *fakeSocial) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.StudentProfile, error) {
	grade, ok := f.grades[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.StudentProfile{UserID: userID, GradeLevel: grade}, nil
}

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(eventType event.Type, handler event.Handler) {}

func (b *recordingBus) types() []event.Type {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Type, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

func (b *recordingBus) last(t event.Type) (event.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].Type == t {
			return b.events[i], true
		}
	}
	return event.Event{}, false
}

// staticCatalog serves content for every subject
type staticCatalog struct {
	items []domain.QuizContent
}

func (c *staticCatalog) FindContent(ctx context.Context, f domain.ContentFilter) ([]domain.QuizContent, error) {
	var out []domain.QuizContent
	for _, it := range c.items {
		if it.SubjectID != f.SubjectID {
			continue
		}
		if f.GradeLevel != 0 && it.GradeLevel != f.GradeLevel {
			continue
		}
		if f.Difficulty != 0 && it.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
