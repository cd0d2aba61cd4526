package duel

import "time"

// Defaults
const (
	DefaultMaxQuizzesPerSubject = 10
	DefaultListLimit            = 50
	DefaultSweepBatchSize       = 100

	LockKeyPrefix           = "duel:"
	LockContentionThreshold = 50 * time.Millisecond
)

// Log messages
const (
	LogMsgCreateDuelCalled      = "CreateDuel called"
	LogMsgDuelCreated           = "Duel created"
	LogMsgRespondCalled         = "Respond called"
	LogMsgActivateCalled        = "Activate called"
	LogMsgDuelActivated         = "Duel activated"
	LogMsgActivationAborted     = "Activation aborted, duel stays pending"
	LogMsgExpiryApplied         = "Expiry transition applied"
	LogMsgLockContended         = "Waited for duel lock"
	LogMsgSweepDuelFailed       = "Sweep failed to settle duel"
	LogMsgSweepCompleted        = "Expiry sweep completed"
	LogMsgSlotsUnavailable      = "Failed to load quiz slots for view"
	LogMsgInvitationUnavailable = "Invitation not attached to view"
	LogMsgPublishFailed         = "Failed to publish duel event"
)

// Error messages
const (
	ErrMsgMissingParticipant    = "creator and opponent are required"
	ErrMsgUnknownDifficulty     = "unknown difficulty"
	ErrMsgSubjectCount          = "a duel needs between 1 and 3 subjects"
	ErrMsgEmptySubject          = "subject id is empty"
	ErrMsgDuplicateSubject      = "subject listed twice"
	ErrMsgQuizCount             = "quiz count out of range"
	ErrMsgOnlyOpponentResponds  = "only the invited opponent can respond"
	ErrMsgOnlyCreatorActivates  = "only the creator can activate the duel"
	ErrMsgInvitationNotAccepted = "invitation has not been accepted"
	ErrMsgAcceptBeforePlaying   = "the opponent can answer after accepting"
)

// Error context messages
const (
	ErrContextFriendshipCheck = "failed to check friendship"
	ErrContextGetProfile      = "failed to load creator profile"
	ErrContextFindPending     = "failed to look up pending duel"
	ErrContextBeginTx         = "failed to begin transaction"
	ErrContextCommitTx        = "failed to commit transaction"
	ErrContextAcquireLock     = "failed to acquire duel lock"
	ErrContextInsertDuel      = "failed to insert duel"
	ErrContextLoadDuel        = "failed to load duel"
	ErrContextUpdateDuel      = "failed to update duel"
	ErrContextLoadInvitation  = "failed to load invitation"
	ErrContextInsertSlots     = "failed to insert quiz slots"
	ErrContextLoadSlots       = "failed to load quiz slots"
	ErrContextListDuels       = "failed to list duels"
	ErrContextListDue         = "failed to list duels due for expiry"
)
