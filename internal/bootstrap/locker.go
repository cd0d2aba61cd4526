package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/QuizDuel_Go/internal/concurrency"
	"github.com/osse101/QuizDuel_Go/internal/config"
)

// InitializeLocker picks the per-duel lock implementation. With REDIS_ADDR set
// the lock is shared by every instance; otherwise it lives in this process.
// The returned client is nil for in-process locks.
func InitializeLocker(ctx context.Context, cfg *config.Config) (concurrency.Locker, *redis.Client, error) {
	if !cfg.UseRedisLocks() {
		slog.Info(LogMsgLocalLocksEnabled)
		return concurrency.NewLockManager(), nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgRedisUnreachable, err)
	}

	slog.Info(LogMsgRedisLocksEnabled, "addr", cfg.RedisAddr, "ttl", cfg.RedisLockTTL)
	return concurrency.NewRedisLocker(client, cfg.RedisLockTTL), client, nil
}
