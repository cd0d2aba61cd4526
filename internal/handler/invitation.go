package handler

import (
	"net/http"

	"github.com/osse101/QuizDuel_Go/internal/domain"
	"github.com/osse101/QuizDuel_Go/internal/duel"
)

// InvitationListResponse wraps an invitation listing
type InvitationListResponse struct {
	Direction   domain.InvitationDirection `json:"direction"`
	Invitations []domain.InvitationView    `json:"invitations"`
}

// HandleListInvitations lists invitations the caller sent or received
// @Summary List invitations
// @Tags invitations
// @Produce json
// @Param direction query string false "sent or received (default received)"
// @Success 200 {object} InvitationListResponse
// @Failure 400 {object} ErrorResponse
// @Router /invitations [get]
// @Security BearerAuth
func HandleListInvitations(service duel.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		direction := GetOptionalQueryParam(r, "direction", string(domain.DirectionReceived))
		if err := GetValidator().ValidateVar(direction, "direction"); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDirection)
			return
		}

		views, err := service.ListInvitations(r.Context(), userID, domain.InvitationDirection(direction))
		if err != nil {
			respondServiceError(w, r, "List invitations", err)
			return
		}

		respondJSON(w, http.StatusOK, InvitationListResponse{
			Direction:   domain.InvitationDirection(direction),
			Invitations: views,
		})
	}
}
