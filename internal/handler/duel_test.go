package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/duel"
	"github.com/osse101/QuizDuel_Go/internal/identity"
	"github.com/osse101/QuizDuel_Go/mocks"
)

var (
	testUserID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	testDuelID = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
)

// newRequest builds an authenticated request with the chi {id} param set
func newRequest(method, target string, body interface{}, duelID string) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := identity.WithUser(req.Context(), testUserID)
	if duelID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", duelID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func sampleView(status domain.DuelStatus) *domain.DuelView {
	return &domain.DuelView{
		Duel:         &domain.Duel{ID: testDuelID, Status: status},
		TotalQuizzes: 3,
		Role:         domain.ParticipantCreator,
	}
}

func TestDuelHandler_HandleCreate(t *testing.T) {
	opponent := uuid.New()
	validBody := CreateDuelBody{
		OpponentID: opponent.String(),
		Subjects:   []SubjectBody{{SubjectID: "math", QuizCount: 3}},
		Difficulty: "Easy",
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockDuelService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Validation Error",
			body:           CreateDuelBody{OpponentID: opponent.String(), Difficulty: "easy"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"subjects"`,
		},
		{
			name: "Not Friends",
			body: validBody,
			setupMocks: func(m *mocks.MockDuelService) {
				m.On("CreateDuel", mock.Anything, testUserID, mock.Anything).Return(nil, domain.ErrNotFriends)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgNotFriendsError,
		},
		{
			name: "Duplicate Pending Duel",
			body: validBody,
			setupMocks: func(m *mocks.MockDuelService) {
				m.On("CreateDuel", mock.Anything, testUserID, mock.Anything).Return(nil, domain.ErrDuplicateInvitation)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDuplicateInvitationError,
		},
		{
			name: "Success",
			body: validBody,
			setupMocks: func(m *mocks.MockDuelService) {
				want := duel.CreateDuelRequest{
					OpponentID: opponent,
					Subjects:   []domain.SubjectAllocation{{SubjectID: "math", QuizCount: 3}},
					Difficulty: domain.DifficultyEasy,
				}
				m.On("CreateDuel", mock.Anything, testUserID, want).Return(sampleView(domain.DuelStatusPending), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   testDuelID.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockDuelService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			h := NewDuelHandler(svc)

			rec := httptest.NewRecorder()
			h.HandleCreate(rec, newRequest(http.MethodPost, "/duels", tt.body, ""))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestDuelHandler_HandleRespond(t *testing.T) {
	expiredErr := fmt.Errorf("%w: %w: duel lapsed", domain.ErrInvalidTransition, domain.ErrExpired)

	tests := []struct {
		name           string
		duelID         string
		body           interface{}
		setupMocks     func(*mocks.MockDuelService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid Duel ID",
			duelID:         "nope",
			body:           RespondBody{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidDuelID,
		},
		{
			name:           "Missing Accept",
			duelID:         testDuelID.String(),
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"accept"`,
		},
		{
			name:   "Expired",
			duelID: testDuelID.String(),
			body:   map[string]bool{"accept": true},
			setupMocks: func(m *mocks.MockDuelService) {
				m.On("Respond", mock.Anything, testUserID, testDuelID, true).Return(sampleView(domain.DuelStatusCancelled), expiredErr)
			},
			expectedStatus: http.StatusGone,
			expectedBody:   ErrMsgExpiredError,
		},
		{
			name:   "Decline",
			duelID: testDuelID.String(),
			body:   map[string]bool{"accept": false},
			setupMocks: func(m *mocks.MockDuelService) {
				m.On("Respond", mock.Anything, testUserID, testDuelID, false).Return(sampleView(domain.DuelStatusCancelled), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"cancelled"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockDuelService(t)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}

			rec := httptest.NewRecorder()
			NewDuelHandler(svc).HandleRespond(rec, newRequest(http.MethodPost, "/duels/x/respond", tt.body, tt.duelID))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestDuelHandler_HandleActivate(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"Success", nil, http.StatusOK},
		{"Content Unavailable", domain.ErrContentUnavailable, http.StatusUnprocessableEntity},
		{"Not Accepted", fmt.Errorf("%w: invitation has not been accepted", domain.ErrInvalidTransition), http.StatusConflict},
		{"Not Creator", fmt.Errorf("%w: only the creator can activate the duel", domain.ErrUnauthorized), http.StatusForbidden},
		{"Missing Duel", domain.ErrDuelNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockDuelService(t)
			var view *domain.DuelView
			if tt.err == nil {
				view = sampleView(domain.DuelStatusActive)
			}
			svc.On("Activate", mock.Anything, testUserID, testDuelID).Return(view, tt.err)

			rec := httptest.NewRecorder()
			NewDuelHandler(svc).HandleActivate(rec, newRequest(http.MethodPost, "/duels/x/activate", nil, testDuelID.String()))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestDuelHandler_HandleAnswer(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"Success", map[string]interface{}{"ordinal": 1, "correct": true}, nil, http.StatusOK, MsgAnswerRecorded},
		{"Already Answered", map[string]interface{}{"ordinal": 1, "correct": false}, domain.ErrSlotAlreadyAnswered, http.StatusConflict, ErrMsgSlotAlreadyAnsweredError},
		{"Out Of Order", map[string]interface{}{"ordinal": 3, "correct": true}, domain.ErrSlotOutOfOrder, http.StatusConflict, ErrMsgSlotOutOfOrderError},
		{"Lost Race", map[string]interface{}{"ordinal": 2, "correct": true}, domain.ErrConcurrentModification, http.StatusConflict, ErrMsgConcurrentError},
		{"Missing Slot", map[string]interface{}{"ordinal": 9, "correct": true}, fmt.Errorf("%w: 9 outside 1-8", domain.ErrSlotNotFound), http.StatusNotFound, ErrMsgSlotNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockDuelService(t)
			body := tt.body.(map[string]interface{})
			var view *domain.DuelView
			if tt.err == nil {
				view = sampleView(domain.DuelStatusActive)
			}
			svc.On("RecordAnswer", mock.Anything, testUserID, testDuelID, body["ordinal"], body["correct"]).Return(view, tt.err)

			rec := httptest.NewRecorder()
			NewDuelHandler(svc).HandleAnswer(rec, newRequest(http.MethodPost, "/duels/x/answers", tt.body, testDuelID.String()))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}

	t.Run("Zero Ordinal Rejected", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleAnswer(rec, newRequest(http.MethodPost, "/duels/x/answers",
			map[string]interface{}{"ordinal": 0, "correct": true}, testDuelID.String()))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDuelHandler_HandleGet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		svc.On("GetDuelView", mock.Anything, testUserID, testDuelID).Return(sampleView(domain.DuelStatusActive), nil)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleGet(rec, newRequest(http.MethodGet, "/duels/x", nil, testDuelID.String()))

		require.Equal(t, http.StatusOK, rec.Code)
		var view domain.DuelView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, testDuelID, view.Duel.ID)
		assert.Equal(t, 3, view.TotalQuizzes)
	})

	t.Run("Not A Member", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		svc.On("GetDuelView", mock.Anything, testUserID, testDuelID).Return(nil, domain.ErrNotDuelMember)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleGet(rec, newRequest(http.MethodGet, "/duels/x", nil, testDuelID.String()))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgNotDuelMemberError)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		req := httptest.NewRequest(http.MethodGet, "/duels/x", nil)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleGet(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDuelHandler_HandleList(t *testing.T) {
	t.Run("Bucket Filter", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		svc.On("ListDuels", mock.Anything, testUserID, domain.BucketYourTurn).
			Return([]domain.DuelView{*sampleView(domain.DuelStatusActive)}, nil)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleList(rec, newRequest(http.MethodGet, "/duels?bucket=your_turn", nil, ""))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp DuelListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Duels, 1)
	})

	t.Run("All Buckets", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)
		svc.On("ListDuels", mock.Anything, testUserID, domain.DuelBucket("")).Return([]domain.DuelView{}, nil)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleList(rec, newRequest(http.MethodGet, "/duels", nil, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"duels":[]`)
	})

	t.Run("Unknown Bucket", func(t *testing.T) {
		svc := mocks.NewMockDuelService(t)

		rec := httptest.NewRecorder()
		NewDuelHandler(svc).HandleList(rec, newRequest(http.MethodGet, "/duels?bucket=mine", nil, ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid bucket")
	})
}
