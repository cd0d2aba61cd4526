package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/duel"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// DuelHandler serves the participant-facing duel endpoints
type DuelHandler struct {
	service duel.Service
}

// NewDuelHandler creates a new DuelHandler
func NewDuelHandler(service duel.Service) *DuelHandler {
	return &DuelHandler{service: service}
}

// SubjectBody is one subject allocation in a create request
type SubjectBody struct {
	SubjectID string `json:"subject_id" validate:"required,max=64"`
	QuizCount int    `json:"quiz_count" validate:"min=1"`
}

// CreateDuelBody is the body of POST /duels
type CreateDuelBody struct {
	OpponentID string        `json:"opponent_id" validate:"required,uuid"`
	Subjects   []SubjectBody `json:"subjects" validate:"required,min=1,max=3,dive"`
	Difficulty string        `json:"difficulty" validate:"required,difficulty"`
}

// RespondBody is the body of POST /duels/{id}/respond
type RespondBody struct {
	Accept *bool `json:"accept" validate:"required"`
}

// AnswerBody is the body of POST /duels/{id}/answers
type AnswerBody struct {
	Ordinal int   `json:"ordinal" validate:"min=1"`
	Correct *bool `json:"correct" validate:"required"`
}

// DuelListResponse wraps a duel listing
type DuelListResponse struct {
	Duels []domain.DuelView `json:"duels"`
}

// HandleCreate creates a duel and invites the opponent
// @Summary Create a duel
// @Description Invites a friend to a quiz duel over 1 to 3 subjects
// @Tags duels
// @Accept json
// @Produce json
// @Param request body CreateDuelBody true "Duel setup"
// @Success 201 {object} DataResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /duels [post]
// @Security BearerAuth
func (h *DuelHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body CreateDuelBody
	if err := DecodeAndValidateRequest(r, w, &body, "Create duel"); err != nil {
		return
	}

	req := duel.CreateDuelRequest{
		OpponentID: uuid.MustParse(body.OpponentID),
		Difficulty: domain.DifficultyTier(strings.ToLower(body.Difficulty)),
		Subjects:   make([]domain.SubjectAllocation, 0, len(body.Subjects)),
	}
	for _, s := range body.Subjects {
		req.Subjects = append(req.Subjects, domain.SubjectAllocation{SubjectID: s.SubjectID, QuizCount: s.QuizCount})
	}

	view, err := h.service.CreateDuel(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, r, "Create duel", err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgDuelCreated, Data: view})
}

// HandleRespond accepts or declines an invitation
// @Summary Respond to a duel invitation
// @Tags duels
// @Accept json
// @Produce json
// @Param id path string true "Duel ID"
// @Param request body RespondBody true "Accept or decline"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /duels/{id}/respond [post]
// @Security BearerAuth
func (h *DuelHandler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	duelID, ok := duelIDParam(w, r)
	if !ok {
		return
	}

	var body RespondBody
	if err := DecodeAndValidateRequest(r, w, &body, "Respond to duel"); err != nil {
		return
	}

	view, err := h.service.Respond(r.Context(), userID, duelID, *body.Accept)
	if err != nil {
		respondServiceError(w, r, "Respond to duel", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgInvitationAnswer, Data: view})
}

// HandleActivate starts an accepted duel
// @Summary Activate a duel
// @Description Resolves the quiz slots and opens the 30 minute session
// @Tags duels
// @Produce json
// @Param id path string true "Duel ID"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /duels/{id}/activate [post]
// @Security BearerAuth
func (h *DuelHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	duelID, ok := duelIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.service.Activate(r.Context(), userID, duelID)
	if err != nil {
		respondServiceError(w, r, "Activate duel", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgDuelActivated, Data: view})
}

// HandleAnswer records the caller's answer for the next quiz slot
// @Summary Record an answer
// @Tags duels
// @Accept json
// @Produce json
// @Param id path string true "Duel ID"
// @Param request body AnswerBody true "Answer"
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /duels/{id}/answers [post]
// @Security BearerAuth
func (h *DuelHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	duelID, ok := duelIDParam(w, r)
	if !ok {
		return
	}

	var body AnswerBody
	if err := DecodeAndValidateRequest(r, w, &body, "Record answer"); err != nil {
		return
	}

	view, err := h.service.RecordAnswer(r.Context(), userID, duelID, body.Ordinal, *body.Correct)
	if err != nil {
		respondServiceError(w, r, "Record answer", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgAnswerRecorded, Data: view})
}

// HandleGet returns the caller's view of one duel
// @Summary Get a duel
// @Tags duels
// @Produce json
// @Param id path string true "Duel ID"
// @Success 200 {object} domain.DuelView
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /duels/{id} [get]
// @Security BearerAuth
func (h *DuelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	duelID, ok := duelIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetDuelView(r.Context(), userID, duelID)
	if err != nil {
		respondServiceError(w, r, "Get duel", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// HandleList lists the caller's duels, optionally one bucket
// @Summary List duels
// @Tags duels
// @Produce json
// @Param bucket query string false "your_turn, waiting_on_opponent, not_started or completed"
// @Success 200 {object} DuelListResponse
// @Failure 400 {object} ErrorResponse
// @Router /duels [get]
// @Security BearerAuth
func (h *DuelHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	bucket := GetOptionalQueryParam(r, "bucket", "")
	if err := GetValidator().ValidateVar(bucket, "bucket"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidBucket)
		return
	}

	views, err := h.service.ListDuels(r.Context(), userID, domain.DuelBucket(bucket))
	if err != nil {
		respondServiceError(w, r, "List duels", err)
		return
	}

	logger.FromContext(r.Context()).Debug(LogMsgDuelsListed, "user_id", userID, "bucket", bucket, "count", len(views))
	respondJSON(w, http.StatusOK, DuelListResponse{Duels: views})
}
