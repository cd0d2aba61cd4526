package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the respondent-side acceptance state
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// InvitationDirection selects sent or received invitations in listings
type InvitationDirection string

const (
	DirectionSent     InvitationDirection = "sent"
	DirectionReceived InvitationDirection = "received"
)

// Invitation gates activation of a duel on the respondent's acceptance
type Invitation struct {
	ID          uuid.UUID        `json:"id"`
	DuelID      uuid.UUID        `json:"duel_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
}

// InvitationView is an invitation joined with its duel for listing screens
type InvitationView struct {
	Invitation Invitation          `json:"invitation"`
	CreatorID  uuid.UUID           `json:"creator_id"`
	OpponentID uuid.UUID           `json:"opponent_id"`
	DuelStatus DuelStatus          `json:"duel_status"`
	Subjects   []SubjectAllocation `json:"subjects"`
	Difficulty DifficultyTier      `json:"difficulty"`
	ExpiresAt  time.Time           `json:"expires_at"`
}
