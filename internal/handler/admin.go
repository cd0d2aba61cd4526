package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/eventlog"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// ExpirySweeper runs one expiry sweep
type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// SweepResponse reports the outcome of a manual sweep
type SweepResponse struct {
	Message string `json:"message"`
	Settled int    `json:"settled"`
	Error   string `json:"error,omitempty"`
}

// HandleSweep runs the expiry sweep on demand (admin only)
// @Summary Run the expiry sweep
// @Description Settles every duel whose invitation or session window has lapsed
// @Tags admin
// @Produce json
// @Success 200 {object} SweepResponse
// @Failure 500 {object} SweepResponse
// @Router /admin/duels/sweep [post]
// @Security ApiKeyAuth
func HandleSweep(sweeper ExpirySweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info(LogMsgSweepTriggered)

		settled, err := sweeper.SweepExpired(r.Context())
		if err != nil {
			log.Error(LogMsgSweepFinished, "settled", settled, "error", err)
			respondJSON(w, http.StatusInternalServerError, SweepResponse{
				Message: ErrMsgSweepFailed,
				Settled: settled,
				Error:   err.Error(),
			})
			return
		}

		log.Info(LogMsgSweepFinished, "settled", settled)
		respondJSON(w, http.StatusOK, SweepResponse{Message: MsgSweepCompleted, Settled: settled})
	}
}

// DuelHistory serves the logged events of a duel
type DuelHistory interface {
	History(ctx context.Context, duelID uuid.UUID, limit int) ([]eventlog.Entry, error)
}

// DuelHistoryResponse lists a duel's events oldest first
type DuelHistoryResponse struct {
	DuelID uuid.UUID        `json:"duel_id"`
	Events []eventlog.Entry `json:"events"`
}

// HandleDuelHistory returns the event history of one duel (admin only)
// @Summary Duel event history
// @Tags admin
// @Produce json
// @Param id path string true "Duel ID"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} DuelHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/duels/{id}/events [get]
// @Security ApiKeyAuth
func HandleDuelHistory(history DuelHistory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		duelID, ok := duelIDParam(w, r)
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = n
		}

		entries, err := history.History(r.Context(), duelID, limit)
		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgServiceError, "error", err, "duel_id", duelID)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		if entries == nil {
			entries = []eventlog.Entry{}
		}
		respondJSON(w, http.StatusOK, DuelHistoryResponse{DuelID: duelID, Events: entries})
	}
}
