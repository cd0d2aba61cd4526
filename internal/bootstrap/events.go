package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/QuizDuel_Go/internal/config"
	"github.com/osse101/QuizDuel_Go/internal/event"
)

// InitializeEventSystem builds the in-memory bus and the resilient publisher
// the duel service publishes through. Subscribers attach to the bus.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	retries := positiveOr(cfg.EventMaxRetries, config.DefaultEventMaxRetries)
	delay := positiveOr(cfg.EventRetryDelay, config.DefaultEventRetryDelay)
	deadLetter := cfg.DeadLetterPath
	if deadLetter == "" {
		deadLetter = config.DefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetter), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetter, err)
	}
	publisher, err := event.NewResilientPublisher(bus, retries, delay, deadLetter)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreatePublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized, "max_retries", retries, "retry_delay", delay, "dead_letter", deadLetter)
	return bus, publisher, nil
}

func positiveOr[T ~int | ~int64](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
