package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DuelStatus represents the lifecycle state of a duel
type DuelStatus string

const (
	DuelStatusPending   DuelStatus = "pending"
	DuelStatusActive    DuelStatus = "active"
	DuelStatusCompleted DuelStatus = "completed"
	DuelStatusCancelled DuelStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible
func (s DuelStatus) IsTerminal() bool {
	return s == DuelStatusCompleted || s == DuelStatusCancelled
}

// DifficultyTier is the coarse difficulty label chosen when creating a duel
type DifficultyTier string

const (
	DifficultyEasy   DifficultyTier = "easy"
	DifficultyMedium DifficultyTier = "medium"
	DifficultyHard   DifficultyTier = "hard"
)

// Level resolves the tier to the numeric difficulty used by the content catalog.
// Returns 0 for unknown tiers.
func (d DifficultyTier) Level() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the tier is one of the known labels
func (d DifficultyTier) Valid() bool {
	return d.Level() != 0
}

// OutcomeReason explains how a duel reached its terminal state.
// It is display data, not an error.
type OutcomeReason string

const (
	OutcomeNone              OutcomeReason = ""
	OutcomeDeclined          OutcomeReason = "declined"
	OutcomeExpiredInvitation OutcomeReason = "expired_invitation"
	OutcomeForfeitTimeout    OutcomeReason = "forfeit_timeout"
	OutcomeSessionTimeout    OutcomeReason = "session_timeout"
	OutcomeFinished          OutcomeReason = "finished"
)

// Duel limits
const (
	MinDuelSubjects = 1
	MaxDuelSubjects = 3
)

// SubjectAllocation is one (subject, quiz count) pair chosen at creation
type SubjectAllocation struct {
	SubjectID string `json:"subject_id"`
	QuizCount int    `json:"quiz_count"`
}

// Participant identifies which side of a duel a user is on
type Participant string

const (
	ParticipantNone     Participant = ""
	ParticipantCreator  Participant = "creator"
	ParticipantOpponent Participant = "opponent"
)

// Duel is the aggregate root of a two-party asynchronous quiz competition
type Duel struct {
	ID               uuid.UUID           `json:"id"`
	CreatorID        uuid.UUID           `json:"creator_id"`
	OpponentID       uuid.UUID           `json:"opponent_id"`
	Status           DuelStatus          `json:"status"`
	Subjects         []SubjectAllocation `json:"subjects"`
	Difficulty       DifficultyTier      `json:"difficulty"`
	GradeLevel       int                 `json:"grade_level"`
	CreatorProgress  int                 `json:"creator_progress"`
	OpponentProgress int                 `json:"opponent_progress"`
	CreatorScore     int                 `json:"creator_score"`
	OpponentScore    int                 `json:"opponent_score"`
	WinnerID         *uuid.UUID          `json:"winner_id,omitempty"`
	OutcomeReason    OutcomeReason       `json:"outcome_reason,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	StartedAt        *time.Time          `json:"started_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	Version          int64               `json:"version"`
}

// TotalQuizzes is the number of quiz slots derived from the subject allocations
func (d *Duel) TotalQuizzes() int {
	total := 0
	for _, s := range d.Subjects {
		total += s.QuizCount
	}
	return total
}

// ParticipantOf returns which side userID plays, or ParticipantNone
func (d *Duel) ParticipantOf(userID uuid.UUID) Participant {
	switch userID {
	case d.CreatorID:
		return ParticipantCreator
	case d.OpponentID:
		return ParticipantOpponent
	default:
		return ParticipantNone
	}
}

// ProgressOf returns the completed quiz count for the given side
func (d *Duel) ProgressOf(p Participant) int {
	if p == ParticipantOpponent {
		return d.OpponentProgress
	}
	return d.CreatorProgress
}

// ScoreOf returns the accumulated score for the given side
func (d *Duel) ScoreOf(p Participant) int {
	if p == ParticipantOpponent {
		return d.OpponentScore
	}
	return d.CreatorScore
}

// CreatorFinished reports whether the creator answered every slot
func (d *Duel) CreatorFinished() bool {
	return d.CreatorProgress >= d.TotalQuizzes()
}

// OpponentFinished reports whether the opponent answered every slot
func (d *Duel) OpponentFinished() bool {
	return d.OpponentProgress >= d.TotalQuizzes()
}

// BothFinished reports whether both participants answered every slot
func (d *Duel) BothFinished() bool {
	return d.CreatorFinished() && d.OpponentFinished()
}

// OtherParticipant returns the user ID on the opposite side from userID
func (d *Duel) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if userID == d.CreatorID {
		return d.OpponentID
	}
	return d.CreatorID
}

// Clone returns a deep copy so callers can mutate without aliasing stored state
func (d *Duel) Clone() *Duel {
	c := *d
	c.Subjects = append([]SubjectAllocation(nil), d.Subjects...)
	if d.WinnerID != nil {
		w := *d.WinnerID
		c.WinnerID = &w
	}
	if d.StartedAt != nil {
		t := *d.StartedAt
		c.StartedAt = &t
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// QuizSlot is one fixed quiz assigned to an ordinal position within a duel.
// Both participants answer the same slots.
type QuizSlot struct {
	DuelID     uuid.UUID `json:"duel_id"`
	Ordinal    int       `json:"ordinal"`
	SubjectID  string    `json:"subject_id"`
	ContentRef uuid.UUID `json:"content_ref"`
	Points     int       `json:"points"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// DuelBucket groups duels for the per-user listing
type DuelBucket string

const (
	BucketYourTurn          DuelBucket = "your_turn"
	BucketWaitingOnOpponent DuelBucket = "waiting_on_opponent"
	BucketNotStarted        DuelBucket = "not_started"
	BucketCompleted         DuelBucket = "completed"
)

// DuelView is the read model returned to a participant
type DuelView struct {
	Duel             *Duel        `json:"duel"`
	Invitation       *Invitation  `json:"invitation,omitempty"`
	Slots            []QuizSlot   `json:"slots,omitempty"`
	TotalQuizzes     int          `json:"total_quizzes"`
	Role             Participant  `json:"role"`
	Bucket           DuelBucket   `json:"bucket"`
	ExpiresAt        *time.Time   `json:"expires_at,omitempty"`
	RemainingSeconds int64        `json:"remaining_seconds"`
	Outcome          *DuelOutcome `json:"outcome,omitempty"`
}

// DuelOutcome summarises a terminal duel for display
type DuelOutcome struct {
	Status   DuelStatus    `json:"status"`
	Reason   OutcomeReason `json:"reason"`
	WinnerID *uuid.UUID    `json:"winner_id,omitempty"`
	Draw     bool          `json:"draw"`
}

// MarshalSubjects converts subject allocations to JSONB
func MarshalSubjects(subjects []SubjectAllocation) ([]byte, error) {
	return json.Marshal(subjects)
}

// UnmarshalSubjects converts JSONB to subject allocations
func UnmarshalSubjects(data []byte) ([]SubjectAllocation, error) {
	var subjects []SubjectAllocation
	if err := json.Unmarshal(data, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}
