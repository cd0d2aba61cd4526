package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/identity"
	"github.com/osse101/QuizDuel_Go/internal/logger"
)

// ValidationErrorResponse is the 400 body for a request that failed field validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest reads a JSON body into req and checks its tags.
// On error the 400 has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, action string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf(LogMsgRequestDecodeError, action), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(fmt.Sprintf(LogMsgRequestDecoded, action))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetOptionalQueryParam returns the named query value, or fallback when it is absent or empty
func GetOptionalQueryParam(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := identity.UserFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, ErrMsgUnauthenticated)
		return uuid.Nil, false
	}
	return userID, true
}

func duelIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDuelID)
		return uuid.Nil, false
	}
	return id, true
}
