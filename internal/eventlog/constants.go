package eventlog

// MaxHistoryLimit caps one History call
const MaxHistoryLimit = 200

// Log messages - service events
const (
	LogMsgPayloadWithoutDuel = "Event payload has no duel id, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgMarshalPayload = "failed to marshal event payload"
)

// Log field keys
const (
	LogFieldType         = "type"
	LogFieldDuelID       = "duel_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deleted_count"
)
