package concurrency

import "time"

// Lock defaults
const (
	DefaultPollInterval   = 10 * time.Millisecond
	DefaultRedisLockTTL   = 10 * time.Second
	DefaultReleaseTimeout = 2 * time.Second
	RedisKeyPrefix        = "quizduel:lock:"
)

// Log and error messages
const (
	LogMsgRedisReleaseFailed = "Failed to release redis lock"
	ErrContextRedisAcquire   = "failed to acquire redis lock"
)
