package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidDuelID         = "Invalid duel ID"
	ErrMsgUnauthenticated       = "Authentication required"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidBucket     = "Invalid bucket. Valid options: your_turn, waiting_on_opponent, not_started, completed"
	ErrMsgInvalidDirection  = "Invalid direction. Valid options: sent, received"

	// Admin error messages
	ErrMsgSweepFailed  = "Expiry sweep finished with errors"
	ErrMsgInvalidLimit = "Invalid limit"
)

// Success messages for API responses
const (
	MsgDuelCreated      = "Duel invitation sent"
	MsgInvitationAnswer = "Response recorded"
	MsgDuelActivated    = "Duel started"
	MsgAnswerRecorded   = "Answer recorded"
	MsgSweepCompleted   = "Expiry sweep completed"
)

// Log messages
const (
	LogMsgServiceError       = "Service call failed"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgDuelsListed        = "Duels listed"
	LogMsgSweepTriggered     = "Manual expiry sweep triggered"
	LogMsgSweepFinished      = "Manual expiry sweep finished"
	LogMsgRequestDecoded     = "%s request decoded"
	LogMsgRequestDecodeError = "Failed to decode %s request"
)
