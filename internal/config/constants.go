package config

import "time"

// Defaults applied when a variable is absent or unparsable
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultServiceName = "quizduel"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBName            = "quizduel"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultRedisLockTTL = 10 * time.Second

	MinJWTSecretLength = 32

	DefaultInvitationTTL        = 24 * time.Hour
	DefaultSessionTTL           = 30 * time.Minute
	DefaultPointsPerCorrect     = 10
	DefaultMaxQuizzesPerSubject = 10

	DefaultSweepInterval = time.Minute
	DefaultSweepBatch    = 100
	DefaultWorkerCount   = 2

	DefaultContentCacheSize = 256
	DefaultContentCacheTTL  = 10 * time.Minute

	DefaultDeadLetterPath  = "logs/event_deadletter.jsonl"
	DefaultEventMaxRetries = 5
	DefaultEventRetryDelay = 2 * time.Second

	DefaultEventLogRetention       = 30 * 24 * time.Hour
	DefaultEventLogCleanupInterval = 6 * time.Hour
)
