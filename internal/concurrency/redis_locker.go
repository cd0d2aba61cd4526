package concurrency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
)

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every service instance pointing at the same Redis.
// Locks expire after ttl so a crashed holder cannot block a duel forever.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	poll   time.Duration
	prefix string
}

// NewRedisLocker creates a RedisLocker
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultRedisLockTTL
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		poll:   DefaultPollInterval,
		prefix: RedisKeyPrefix,
	}
}

func (l *RedisLocker) key(name string) string {
	return l.prefix + name
}

// Lock acquires the key with SET NX PX, retrying until ctx is done
func (l *RedisLocker) Lock(ctx context.Context, name string) (func(), error) {
	key := l.key(name)
	token := uuid.NewString()

	contended := false
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%s: %w", ErrContextRedisAcquire, err)
		}
		if ok {
			break
		}
		if !contended {
			contended = true
			metrics.LockContention.Inc()
		}

		timer := time.NewTimer(l.poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return func() {
		// Release must succeed even if the request context is already cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), DefaultReleaseTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn(LogMsgRedisReleaseFailed, "key", key, "error", err)
		}
	}, nil
}
