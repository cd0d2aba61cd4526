package bootstrap

import "time"

const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Session log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount older sessions survive each start
	LogFileRetentionCount = 9
)

// RedisPingTimeout bounds the startup connectivity check
const RedisPingTimeout = 5 * time.Second

// Scheduled job names, used in logs
const (
	SweepJobName           = "expiry-sweep"
	EventLogCleanupJobName = "event-log-cleanup"
)

// Startup
const (
	LogMsgLoggingInitialized     = "Logging initialized"
	LogMsgStartingService        = "Starting quiz duel service"
	LogMsgConfigurationLoaded    = "Configuration loaded"
	LogMsgFailedDeleteOldLog     = "Failed to delete old session log"
	LogMsgEventSystemInitialized = "Event system ready"
	LogMsgRedisLocksEnabled      = "Duel locks shared through redis"
	LogMsgLocalLocksEnabled      = "Duel locks held in process"
	LogMsgBackgroundJobsReady    = "Background jobs started"

	LogMsgMetricsCollectorRegistered = "Metrics collector subscribed"
	LogMsgDeadlineWorkerSubscribed   = "Deadline worker subscribed"
	LogMsgEventLogSubscribed         = "Duel event log subscribed"
)

// Shutdown
const (
	LogMsgShuttingDown       = "Shutting down"
	LogMsgShutdownStepFailed = "Shutdown step failed"
	LogMsgShutdownStepDone   = "Shutdown step done"
	LogMsgShutdownComplete   = "Shutdown complete"
)

// Errors
const (
	ErrMsgFailedCreateLogsDir     = "failed to create logs directory"
	ErrMsgFailedOpenLogFile       = "failed to open log file"
	ErrMsgFailedCreateDeadLetter  = "failed to create dead-letter directory"
	ErrMsgFailedCreatePublisher   = "failed to create resilient publisher"
	ErrMsgRedisUnreachable        = "redis is unreachable"
	ErrMsgFailedSubscribeEventLog = "failed to subscribe event log"
	ErrMsgFailedRegisterMetrics   = "failed to register metrics collector"
)
