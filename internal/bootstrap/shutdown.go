package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/QuizDuel_Go/internal/event"
	"github.com/osse101/QuizDuel_Go/internal/server"
	"github.com/osse101/QuizDuel_Go/internal/sse"
)

// ShutdownComponents are stopped by GracefulShutdown. Nil fields are skipped.
type ShutdownComponents struct {
	Hub                *sse.Hub
	Server             *server.Server
	Background         *BackgroundJobs
	ResilientPublisher *event.ResilientPublisher
	RedisClient        *redis.Client
}

type shutdownStep struct {
	name string
	stop func(ctx context.Context) error
}

// GracefulShutdown stops components in dependency order. Event streams close
// first because http.Server.Shutdown waits for open handlers. A failing step
// is logged and the sequence continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	var steps []shutdownStep
	if c.Hub != nil {
		steps = append(steps, shutdownStep{"event streams", func(context.Context) error {
			c.Hub.Stop()
			return nil
		}})
	}
	if c.Server != nil {
		steps = append(steps, shutdownStep{"http server", c.Server.Stop})
	}
	if bg := c.Background; bg != nil {
		steps = append(steps,
			shutdownStep{"scheduler", func(context.Context) error {
				bg.Scheduler.Stop()
				return nil
			}},
			shutdownStep{"deadline worker", bg.DeadlineWorker.Shutdown},
			shutdownStep{"worker pool", func(context.Context) error {
				bg.Pool.Stop()
				return nil
			}},
		)
	}
	if c.ResilientPublisher != nil {
		steps = append(steps, shutdownStep{"event publisher", c.ResilientPublisher.Shutdown})
	}
	if c.RedisClient != nil {
		steps = append(steps, shutdownStep{"redis client", func(context.Context) error {
			return c.RedisClient.Close()
		}})
	}

	for _, step := range steps {
		if err := step.stop(ctx); err != nil {
			slog.Error(LogMsgShutdownStepFailed, "component", step.name, "error", err)
			continue
		}
		slog.Debug(LogMsgShutdownStepDone, "component", step.name)
	}
	slog.Info(LogMsgShutdownComplete)
}
