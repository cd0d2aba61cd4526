// Package expiry decides which time-driven duel transitions are due.
// Every function here is pure: the same duel and instant always yield the same verdict.
package expiry

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuizDuel_Go/internal/domain"
)

// Default windows
const (
	DefaultInvitationTTL = 24 * time.Hour
	DefaultSessionTTL    = 30 * time.Minute
)

// Action is the transition an evaluation calls for
type Action int

const (
	// ActionNone means nothing is due
	ActionNone Action = iota
	// ActionCancelInvitation cancels a pending duel whose invitation window lapsed
	ActionCancelInvitation
	// ActionCompleteTimeout completes an active duel whose session window lapsed
	ActionCompleteTimeout
	// ActionCompleteFinished completes an active duel both participants finished
	ActionCompleteFinished
)

func (a Action) String() string {
	switch a {
	case ActionCancelInvitation:
		return "cancel_invitation"
	case ActionCompleteTimeout:
		return "complete_timeout"
	case ActionCompleteFinished:
		return "complete_finished"
	default:
		return "none"
	}
}

// Verdict is the outcome of evaluating a duel at an instant
type Verdict struct {
	Action   Action
	Status   domain.DuelStatus
	Reason   domain.OutcomeReason
	WinnerID *uuid.UUID
}

// Due reports whether a transition must be applied
func (v Verdict) Due() bool {
	return v.Action != ActionNone
}

// Clock evaluates duels against configured windows
type Clock struct {
	InvitationTTL time.Duration
	SessionTTL    time.Duration
}

// NewClock returns a Clock, falling back to the default windows for zero values
func NewClock(invitationTTL, sessionTTL time.Duration) Clock {
	if invitationTTL <= 0 {
		invitationTTL = DefaultInvitationTTL
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return Clock{InvitationTTL: invitationTTL, SessionTTL: sessionTTL}
}

// DefaultClock uses the 24h invitation and 30min session windows
func DefaultClock() Clock {
	return NewClock(DefaultInvitationTTL, DefaultSessionTTL)
}

// IsInvitationExpired reports whether the invitation window has elapsed.
// The boundary instant counts as expired.
func (c Clock) IsInvitationExpired(createdAt, now time.Time) bool {
	return !now.Before(createdAt.Add(c.InvitationTTL))
}

// IsActiveSessionExpired reports whether the active play window has elapsed
func (c Clock) IsActiveSessionExpired(startedAt, now time.Time) bool {
	return !now.Before(startedAt.Add(c.SessionTTL))
}

// InvitationExpiresAt is the instant a pending invitation lapses
func (c Clock) InvitationExpiresAt(createdAt time.Time) time.Time {
	return createdAt.Add(c.InvitationTTL)
}

// SessionExpiresAt is the instant an active session lapses
func (c Clock) SessionExpiresAt(startedAt time.Time) time.Time {
	return startedAt.Add(c.SessionTTL)
}

// ExpiresAt returns the next deadline for a non-terminal duel, or nil
func (c Clock) ExpiresAt(d *domain.Duel) *time.Time {
	var t time.Time
	switch d.Status {
	case domain.DuelStatusPending:
		t = c.InvitationExpiresAt(d.CreatedAt)
	case domain.DuelStatusActive:
		if d.StartedAt == nil {
			return nil
		}
		t = c.SessionExpiresAt(*d.StartedAt)
	default:
		return nil
	}
	return &t
}

// Evaluate decides which transition, if any, is due for d at now.
// Terminal duels never yield a transition.
func (c Clock) Evaluate(d *domain.Duel, now time.Time) Verdict {
	switch d.Status {
	case domain.DuelStatusPending:
		if c.IsInvitationExpired(d.CreatedAt, now) {
			return Verdict{
				Action: ActionCancelInvitation,
				Status: domain.DuelStatusCancelled,
				Reason: domain.OutcomeExpiredInvitation,
			}
		}
	case domain.DuelStatusActive:
		if d.BothFinished() {
			return Verdict{
				Action:   ActionCompleteFinished,
				Status:   domain.DuelStatusCompleted,
				Reason:   domain.OutcomeFinished,
				WinnerID: ResolveWinner(d),
			}
		}
		if d.StartedAt != nil && c.IsActiveSessionExpired(*d.StartedAt, now) {
			winner, reason := ResolveTimeoutWinner(d)
			return Verdict{
				Action:   ActionCompleteTimeout,
				Status:   domain.DuelStatusCompleted,
				Reason:   reason,
				WinnerID: winner,
			}
		}
	}
	return Verdict{Action: ActionNone}
}

// ResolveWinner picks the winner of a duel both participants finished.
// Equal scores are a draw (nil).
func ResolveWinner(d *domain.Duel) *uuid.UUID {
	switch {
	case d.CreatorScore > d.OpponentScore:
		id := d.CreatorID
		return &id
	case d.OpponentScore > d.CreatorScore:
		id := d.OpponentID
		return &id
	default:
		return nil
	}
}

// ResolveTimeoutWinner picks the winner of a duel whose session window lapsed.
// A sole finisher wins by forfeit. If both finished the score decides.
// If nobody finished the duel is a draw.
func ResolveTimeoutWinner(d *domain.Duel) (*uuid.UUID, domain.OutcomeReason) {
	creatorDone := d.CreatorFinished()
	opponentDone := d.OpponentFinished()

	switch {
	case creatorDone && opponentDone:
		return ResolveWinner(d), domain.OutcomeFinished
	case creatorDone:
		id := d.CreatorID
		return &id, domain.OutcomeForfeitTimeout
	case opponentDone:
		id := d.OpponentID
		return &id, domain.OutcomeForfeitTimeout
	default:
		return nil, domain.OutcomeSessionTimeout
	}
}

// Apply mutates d according to v. It is a no-op for a verdict that is not due.
func Apply(d *domain.Duel, v Verdict, now time.Time) {
	if !v.Due() {
		return
	}
	d.Status = v.Status
	d.OutcomeReason = v.Reason
	d.WinnerID = v.WinnerID
	if v.Status.IsTerminal() {
		t := now
		d.CompletedAt = &t
	}
}
