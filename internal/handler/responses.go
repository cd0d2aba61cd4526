package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// encodeBuffers are reused across responses
var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", opName, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", opName, "status", status, "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError       = "Something went wrong"
	ErrMsgDuelNotFoundError        = "Duel not found"
	ErrMsgSlotNotFoundError        = "That quiz is not part of this duel"
	ErrMsgExpiredError             = "This duel has expired"
	ErrMsgInvalidTransitionError   = "That action is not possible in the duel's current state"
	ErrMsgSlotAlreadyAnsweredError = "That quiz has already been answered"
	ErrMsgSlotOutOfOrderError      = "Quizzes must be answered in order"
	ErrMsgNotFriendsError          = "You can only duel your friends"
	ErrMsgNotDuelMemberError       = "You are not part of this duel"
	ErrMsgForbiddenError           = "You are not allowed to do that"
	ErrMsgContentUnavailableError  = "No quizzes are available for the chosen subjects"
	ErrMsgDuplicateInvitationError = "You already have a pending duel with this friend"
	ErrMsgAlreadyResolvedError     = "This invitation has already been answered"
	ErrMsgConcurrentError          = "The duel changed while you were playing. Please retry"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages.
// More specific errors are checked before the sentinels they wrap.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgDuelNotFoundError
	case errors.Is(err, domain.ErrExpired):
		return http.StatusGone, ErrMsgExpiredError
	case errors.Is(err, domain.ErrSlotAlreadyAnswered):
		return http.StatusConflict, ErrMsgSlotAlreadyAnsweredError
	case errors.Is(err, domain.ErrSlotOutOfOrder):
		return http.StatusConflict, ErrMsgSlotOutOfOrderError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrNotFriends):
		return http.StatusForbidden, ErrMsgNotFriendsError
	case errors.Is(err, domain.ErrNotDuelMember):
		return http.StatusForbidden, ErrMsgNotDuelMemberError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrMsgForbiddenError
	case errors.Is(err, domain.ErrContentUnavailable):
		return http.StatusUnprocessableEntity, ErrMsgContentUnavailableError
	case errors.Is(err, domain.ErrDuplicateInvitation):
		return http.StatusConflict, ErrMsgDuplicateInvitationError
	case errors.Is(err, domain.ErrAlreadyResolved):
		return http.StatusConflict, ErrMsgAlreadyResolvedError
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict, ErrMsgConcurrentError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
