package event

import "time"

// EventSchemaVersion is stamped on every event this build publishes
const EventSchemaVersion = "1.0"

// MetadataKeyRecipients holds the user IDs an event is delivered to
const MetadataKeyRecipients = "recipients"

// Retry queue
const (
	RetryQueueBufferSize = 1000

	// MaxBackoffShift caps the doubling so a misconfigured retry count cannot overflow
	MaxBackoffShift = 10
)

// DeadLetterFilePermissions applies when the dead-letter file is created
const DeadLetterFilePermissions = 0644

// Log messages
const (
	LogMsgEventPublishFailed    = "Publish failed, event queued for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event sent to dead-letter"
	LogMsgDeadLetterWriteFailed = "Dead-letter write failed"
	LogMsgDeadLetterCloseFailed = "Dead-letter file close failed"
	LogMsgEventRetryExhausted   = "Retries exhausted, event sent to dead-letter"
	LogMsgEventRetryFailed      = "Retry attempt failed"
	LogMsgEventRetrySucceeded   = "Retry attempt delivered event"
	LogMsgEventDroppedShutdown  = "Publisher stopping, event sent to dead-letter"
	LogMsgQueueDrainedShutdown  = "Retry queue drained on shutdown"
	LogMsgShutdownTimeout       = "Publisher shutdown deadline passed"
	ErrMsgHandlersFailed        = "%d handler(s) failed for %s"
)

// RetryBackoff doubles base for each attempt after the first: 1x, 2x, 4x...
func RetryBackoff(base time.Duration, attempt int) time.Duration {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift > MaxBackoffShift {
		shift = MaxBackoffShift
	}
	return base << shift
}
