package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func completedDuel() *domain.Duel {
	winner := uuid.New()
	return &domain.Duel{
		ID:            uuid.New(),
		CreatorID:     winner,
		OpponentID:    uuid.New(),
		Status:        domain.DuelStatusCompleted,
		CreatorScore:  30,
		OpponentScore: 10,
		WinnerID:      &winner,
	}
}

func TestService_Subscribe(t *testing.T) {
	mockBus := new(MockEventBus)
	for _, et := range event.DuelEventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	require.NoError(t, NewService(new(MockRepository)).Subscribe(mockBus))
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	d := completedDuel()
	evt := event.NewDuelCompletedEvent(d)

	mockRepo.On("LogEvent", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		var p event.DuelResultPayloadV1
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return false
		}
		return e.DuelID == d.ID &&
			e.EventType == string(event.DuelCompleted) &&
			p.CreatorScore == 30 &&
			assert.ObjectsAreEqual([]string{d.CreatorID.String(), d.OpponentID.String()}, e.Recipients)
	})).Return(nil)

	require.NoError(t, svc.handleEvent(context.Background(), evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_SkipsPayloadWithoutDuel(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	err := svc.handleEvent(context.Background(), event.Event{Type: "other", Payload: map[string]string{"foo": "bar"}})
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything)
}

func TestService_History_ClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	duelID := uuid.New()

	mockRepo.On("ListByDuel", mock.Anything, duelID, MaxHistoryLimit).Return([]Entry{{EventType: "duel.activated"}}, nil).Twice()

	for _, limit := range []int{0, MaxHistoryLimit + 1} {
		entries, err := svc.History(context.Background(), duelID, limit)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}
	mockRepo.AssertExpectations(t)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &service{repo: mockRepo, now: func() time.Time { return now }}

	mockRepo.On("CleanupOldEvents", mock.Anything, now.Add(-48*time.Hour)).Return(int64(5), nil)

	count, err := svc.CleanupOldEvents(context.Background(), 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_StoreFailureIsNotPropagated(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("LogEvent", mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.NoError(t, svc.handleEvent(context.Background(), event.NewDuelCompletedEvent(completedDuel())))
	mockRepo.AssertExpectations(t)
}
